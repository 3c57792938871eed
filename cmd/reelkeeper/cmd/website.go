package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/website"
)

// NewWebsiteCommand creates the static website export command.
func NewWebsiteCommand(app AppContext) *cobra.Command {
	var (
		out      string
		template string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "website",
		Short: "Generate a static HTML page of the collection",
		Example: `  reelkeeper website
  reelkeeper website --out public/index.html --title "Film Shelf"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}

			cfg := website.Config{
				Title:        title,
				OutputPath:   out,
				TemplatePath: template,
			}
			if cfg.Title == "" {
				cfg.Title = app.SiteTitle()
			}
			if err := website.Generate(c, cfg); err != nil {
				return err
			}
			app.Logger().Info().Str("path", out).Int("movies", len(c)).Msg("website generated")
			cmd.Printf("Website saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "index.html", "output HTML path")
	cmd.Flags().StringVar(&template, "template", "", "custom Go html/template file")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	return cmd
}
