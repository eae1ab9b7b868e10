package main

import (
	"eldercare_billing/internal/cli"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Eldercare Billing API
// @version         1.0
// @description     Invoices, payments, gateway webhooks, drift-correction jobs and bank reconciliation.

// @host localhost:8080

// @BasePath  /

func main() {
	cli.Execute()
}
