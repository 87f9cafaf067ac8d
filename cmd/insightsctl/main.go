// Command insightsctl is the operator companion for the engine API.
// It reads and rebuilds weekly leaderboards over HTTP.
package main

func main() {
	Execute()
}
