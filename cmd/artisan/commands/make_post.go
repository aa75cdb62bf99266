package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newMakePostCommand(openStore storeOpener) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "make:post",
		Short: "Create a new blog post",
		Long: `Create a new blog post.

Missing --title is read from the first line of stdin, missing --content from
the rest of stdin. Prompts are shown only when stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			postStore, err := openStore()
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			interactive := isTerminal(cmd.InOrStdin())

			// 1. 輸入 title
			if title == "" {
				if interactive {
					fmt.Fprint(cmd.OutOrStdout(), "Enter title: ")
				}
				line, err := in.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read title: %w", err)
				}
				title = strings.TrimSpace(line)
			}
			if title == "" {
				return errors.New("title cannot be empty")
			}

			// 2. 輸入 content
			if content == "" {
				if interactive {
					fmt.Fprintln(cmd.OutOrStdout(), "Enter content, finish with Ctrl-D:")
				}
				raw, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("failed to read content: %w", err)
				}
				content = string(raw)
			}
			if content == "" {
				return errors.New("content cannot be empty")
			}

			// 3. 建立文章
			if err := postStore.CreatePost(cmd.Context(), store.Post{Title: title, Content: content}); err != nil {
				if errors.Is(err, store.ErrPostExists) {
					return fmt.Errorf("post '%s' already exists", title)
				}
				return fmt.Errorf("failed to create post: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Post '%s' created.\n", title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post content")

	return cmd
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
