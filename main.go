package main

import (
	"os"

	"github.com/VoxDroid/envpath/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
