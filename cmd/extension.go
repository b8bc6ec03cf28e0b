package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/etnz/communityfund/config"
)

// Environment variables passed to extensions, resolved from the configuration.
const (
	EnvStore      = "FUND_STORE"
	EnvFile       = "FUND_FILE"
	EnvSQLitePath = "FUND_SQLITE_PATH"
	EnvRole       = "FUND_ROLE"
	EnvStrict     = "FUND_STRICT"
)

// RunExtension attempts to find and execute an external cf-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cf-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the resolved configuration, so that extensions do not need to read the env file.
	cmd.Env = os.Environ()
	if cfg, err := config.Load(*envFile); err == nil {
		cmd.Env = append(cmd.Env,
			EnvStore+"="+cfg.Store,
			EnvFile+"="+cfg.File,
			EnvSQLitePath+"="+cfg.SQLitePath,
			EnvRole+"="+cfg.Role,
			EnvStrict+"="+strconv.FormatBool(cfg.Strict),
		)
	}

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
