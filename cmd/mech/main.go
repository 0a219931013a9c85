// Command mech executes an impact with the mech program.
package main

import (
	"os"

	"solhello/internal/app"
	"solhello/internal/commands"
)

func main() {
	os.Exit(commands.Execute(app.Mech))
}
