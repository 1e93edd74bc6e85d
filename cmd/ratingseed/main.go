/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mikeb26/chesstd/ratings"
)

// this program exists just to seed the http cache with the federation rating
// list and profile pages ahead of an import-ratings run

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: ratingseed <rating list url>\n")
		os.Exit(1)
	}
	ctx := context.Background()

	client := ratings.NewClient(ctx)
	entries, err := client.FetchList(ctx, os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ratingseed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded rating list (%v entries)\n", len(entries))

	for _, entry := range entries {
		if entry.ProfileURL == "" {
			continue
		}
		_, err := client.Refresh(ctx, []ratings.Entry{entry})
		time.Sleep(2 * time.Second) // avoid pegging the federation site
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v profile data\n", entry.Name)
	}
}
