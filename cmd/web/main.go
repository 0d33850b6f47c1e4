// @title           CreatorHub API
// @version         1.0
// @description     Creator and brand platform: accounts, profiles, posts, media and dashboards.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"fmt"
	"os"

	"creatorhub_backend/internal/app"
)

func main() {
	if err := app.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
