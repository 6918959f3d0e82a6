package main

import (
	"os"

	"github.com/llehouerou/bpplay/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
