package main

import (
	"github.com/traintrack/traintrack/app"
)

func main() {
	app.New(nil).Run()
}
