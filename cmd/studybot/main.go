// cmd/studybot/main.go
package main

import (
	cmd "github.com/mwiater/studybot/internal/cli"
)

// main starts the studybot CLI application by delegating to the
// cobra root command defined in the studybot package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
