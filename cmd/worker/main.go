package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <catalog [url] | guide <projectID> [outFile]>")
	}
	var err error
	switch os.Args[1] {
	case "catalog":
		err = RunCatalog(os.Args[2:])
	case "guide":
		err = RunGuide(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
