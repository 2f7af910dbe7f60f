package main

import (
	"fmt"
	"os"

	"yashubustudio/calibrator/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "calibrator:", err)
		os.Exit(1)
	}
}
