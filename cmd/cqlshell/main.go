// cqlshell is a small smoke-test program for the connection package: it connects to a single CQL node, runs one
// query, and prints whatever comes back.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hzamani/cassandra-go/connection"
)

func main() {
	hostname := flag.String("host", connection.DefaultHostname, "CQL node hostname")
	port := flag.Int("port", connection.DefaultPort, "CQL node port")
	keyspace := flag.String("keyspace", "", "keyspace to USE after connecting")
	query := flag.String("query", "SELECT * FROM system.local", "CQL statement to run")
	flag.Parse()

	conn := connection.NewConnection(connection.Config{
		Hostname: *hostname,
		Port:     *port,
		Keyspace: *keyspace,
		Timeout:  5 * time.Second,
	})
	defer conn.Stop()

	res, err := conn.Query(*query, connection.QueryParams{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		os.Exit(1)
	}

	switch {
	case res.Void:
		fmt.Println("OK")
	case res.Rows != nil:
		printPage(res.Rows)
	case res.Stream != nil:
		for page := range res.Stream {
			printPage(&page)
		}
	}
}

func printPage(page *connection.RowPage) {
	for _, row := range page.Rows {
		for i, col := range row {
			if i > 0 {
				fmt.Print(" | ")
			}
			fmt.Printf("%v", col)
		}
		fmt.Println()
	}
}
