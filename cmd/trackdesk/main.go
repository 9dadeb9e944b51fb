package main

import (
	"log"

	"github.com/tsystem/trackdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
