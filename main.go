package main

import (
	"os"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
