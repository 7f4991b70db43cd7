package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Fetch content from Notion and print it as JSON",
	Long: `Fetch content from Notion and print the normalized records as JSON.
Useful for checking that database properties map the way the site expects.`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if err := initialize(); err != nil {
			return err
		}
		if err := appConfig.Notion.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
}

func init() {
	contentCmd.AddCommand(
		&cobra.Command{
			Use:   "projects",
			Short: "List projects",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printJSON(cmd, newAdapter(appConfig, appLogger, nil).ListProjects(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "blog",
			Short: "List blog posts",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printJSON(cmd, newAdapter(appConfig, appLogger, nil).ListBlogPosts(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "certificates",
			Short: "List certificates",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printJSON(cmd, newAdapter(appConfig, appLogger, nil).ListCertificates(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "about",
			Short: "Print the raw about page",
			RunE: func(cmd *cobra.Command, _ []string) error {
				page := newAdapter(appConfig, appLogger, nil).About(cmd.Context())
				if page == nil {
					return errors.New("about page not available")
				}
				return printJSON(cmd, page)
			},
		},
		&cobra.Command{
			Use:   "post <id>",
			Short: "Print one blog post with its content",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				post := newAdapter(appConfig, appLogger, nil).BlogPost(cmd.Context(), args[0])
				if post == nil {
					return fmt.Errorf("blog post %s not available", args[0])
				}
				return printJSON(cmd, post)
			},
		},
	)
	rootCmd.AddCommand(contentCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
