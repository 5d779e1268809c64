// Command city-insight-api serves the City Insight REST API and chatbot.
package main

import (
	"fmt"
	"os"

	"github.com/Arhamsiaf65/CityInsights/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "city-insight-api: %v\n", err)
		os.Exit(1)
	}
}
