package custom

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"shopcore.GO/api"
	"shopcore.GO/cmd"
	"shopcore.GO/cron"
	"shopcore.GO/cron/jobs"
)

func init() {
	// Cron job: hourly low stock scan
	cron.Register("lowstockscan", "0 * * * *", jobs.LowStockScanJob)

	// CLI command: run the low stock scan once, outside the scheduler
	cmd.Register(&cobra.Command{
		Use:   "stock:scan",
		Short: "Scan inventory for low stock positions and log them",
		Run: func(c *cobra.Command, args []string) {
			jobs.LowStockScanJob(args...)
		},
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"pong": "ok"})
	})
}
