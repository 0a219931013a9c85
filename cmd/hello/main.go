// Command hello stores a number in the hello world program's greeting account.
package main

import (
	"os"

	"solhello/internal/app"
	"solhello/internal/commands"
)

func main() {
	os.Exit(commands.Execute(app.Hello))
}
