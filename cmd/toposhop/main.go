package main

import (
	"github.com/matthieukhl/toposhop/internal/cmd"
)

func main() {
	cmd.Execute()
}
