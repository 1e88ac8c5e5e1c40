package main

import (
	"context"
	"os"

	"github.com/secmon-lab/covidstat/pkg/cli"
)

//	@title			covidstat API
//	@version		0.1.0
//	@description	Query API over WHO COVID-19 case and death statistics.
//	@BasePath		/

//go:generate swag init --generalInfo main.go --dir ./,./pkg/controller/http --output ./docs --outputTypes go

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
