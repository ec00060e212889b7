package config

import (
	"flag"
	"os"

	"github.com/aegislabs/aegis-backend/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   shared API key
//	-u string   upload directory for stored wound images
//	-w int      risk lookback window, days
//	-m string   classifier mode: auto|model|heuristic
//	-e string   inference service endpoint (trained model)
//	-b string   S3 bucket name
//	-g string   S3 region
//	-s string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-u", "-w", "-m", "-e", "-b", "-g", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "shared API key")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "upload directory")
	fs.IntVar(&config.RiskWindowDays, "w", config.RiskWindowDays, "risk lookback window, days")
	fs.StringVar(&config.ClassifierMode, "m", config.ClassifierMode, "classifier mode (auto|model|heuristic)")
	fs.StringVar(&config.ModelEndpoint, "e", config.ModelEndpoint, "inference service endpoint")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s", config.S3BaseEndpoint, "S3 base endpoint")

	_ = fs.Parse(args)
}
