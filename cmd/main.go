package main

import (
	"github.com/tiffinbox/marketplace/internal/app"
	"github.com/tiffinbox/marketplace/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
