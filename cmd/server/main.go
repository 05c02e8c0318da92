package main

import (
	"fmt"
	"os"

	_ "emsapi/docs" // swagger docs

	"emsapi/internal/cli"
)

// @title Employee Management API
// @version 1.0
// @description Employees, salary history, departments and payroll reports behind cookie sessions.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name ems_session
func main() {
	cmd := cli.NewRootCommand()
	if len(os.Args) == 1 {
		cmd.SetArgs([]string{"serve"})
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
