package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/spf13/cobra"
)

func newListCommand(openStore storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List post titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			postStore, err := openStore()
			if err != nil {
				return err
			}

			posts, err := postStore.ListPosts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}

			if len(posts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No posts.")
				return nil
			}
			for _, p := range posts {
				fmt.Fprintln(cmd.OutOrStdout(), p.Title)
			}
			return nil
		},
	}
}

func newShowCommand(openStore storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Print a post's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postStore, err := openStore()
			if err != nil {
				return err
			}

			post, err := postStore.GetPost(cmd.Context(), args[0])
			if err != nil {
				return describe(err, args[0], "read")
			}

			fmt.Fprint(cmd.OutOrStdout(), post.Content)
			return nil
		},
	}
}

func newUpdateCommand(openStore storeOpener) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "update <title>",
		Short: "Replace a post's content",
		Long: `Replace the full content of an existing post.

Without --content the new content is read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postStore, err := openStore()
			if err != nil {
				return err
			}

			if content == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read content: %w", err)
				}
				content = string(raw)
			}
			if content == "" {
				return errors.New("content cannot be empty")
			}

			if err := postStore.UpdatePost(cmd.Context(), store.Post{Title: args[0], Content: content}); err != nil {
				return describe(err, args[0], "update")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Post '%s' updated.\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "new post content")

	return cmd
}

func newDeleteCommand(openStore storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postStore, err := openStore()
			if err != nil {
				return err
			}

			if err := postStore.DeletePost(cmd.Context(), args[0]); err != nil {
				return describe(err, args[0], "delete")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Post '%s' deleted.\n", args[0])
			return nil
		},
	}
}

func describe(err error, title, op string) error {
	if errors.Is(err, store.ErrPostNotFound) {
		return fmt.Errorf("post '%s' does not exist", title)
	}
	return fmt.Errorf("failed to %s post: %w", op, err)
}
