package main

import "github.com/interfect/sqliteshelf/internal/cli"

func main() {
	cli.Execute()
}
