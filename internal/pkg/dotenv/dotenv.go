package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env (или переданные файлы) и применяет флаги командной строки.
// Уже выставленные переменные окружения не перезаписываются.
func Load(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return err
	}

	return applyFlags(flag.CommandLine, os.Args[1:])
}

func applyFlags(fs *flag.FlagSet, args []string) error {
	var portFlag, apiFlag string
	fs.StringVar(&portFlag, "port", "", "Console port (overrides PORT environment variable)")
	fs.StringVar(&apiFlag, "api", "", "Shipment service URL (overrides AGRITRACK_API_URL environment variable)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	overrides := map[string]string{
		"PORT":              portFlag,
		"AGRITRACK_API_URL": apiFlag,
	}
	for key, val := range overrides {
		if val == "" {
			continue
		}
		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
