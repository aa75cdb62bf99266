package main

import (
	"os"

	"github.com/Goodidea-backend-camp/hpb-blog-files/cmd/artisan/commands"
	"github.com/spf13/afero"
)

func main() {
	if err := commands.NewRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
