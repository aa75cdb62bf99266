package commands

import (
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/config"
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the artisan CLI over fsys. The post directory comes
// from --dir, falling back to storage.dir from the server configuration.
func NewRootCommand(fsys afero.Fs) *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:   "artisan",
		Short: "Manage blog posts on disk",
		Long: `Manage the blog post directory directly, without going through the HTTP server.

Every command uses the same storage rules as the server: one file per post,
named after its title.

Examples:
  artisan make:post --title hello --content world
  echo "world2" | artisan update hello
  artisan list --dir ./blogs`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "post directory (default: storage.dir from config)")

	// openStore resolves the directory lazily so --dir is parsed first.
	openStore := func() (store.PostStore, error) {
		if dir == "" {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			dir = cfg.Storage.Dir
		}
		return store.NewFilePostStore(fsys, dir), nil
	}

	rootCmd.AddCommand(
		newMakePostCommand(openStore),
		newListCommand(openStore),
		newShowCommand(openStore),
		newUpdateCommand(openStore),
		newDeleteCommand(openStore),
	)

	return rootCmd
}

type storeOpener func() (store.PostStore, error)
