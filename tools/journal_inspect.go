package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

// Standalone inspector for the upload journal. Opens the database read-only
// so it can run next to a live uploader.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to the journal database")
	prefix := flag.String("prefix", "journal:", "Prefix to scan")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithReadOnly(true).WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening journal: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Handle", "File", "Size", "Status", "File ID", "Finished", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()

			err := item.Value(func(v []byte) error {
				var record struct {
					Handle     string `json:"handle"`
					Name       string `json:"name"`
					Size       int64  `json:"size"`
					Status     string `json:"status"`
					Message    string `json:"message"`
					FileID     string `json:"file_id"`
					FinishedAt string `json:"finished_at"`
				}
				if err := json.Unmarshal(v, &record); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				// Eight characters of the handle are enough to tell rows apart.
				displayHandle := record.Handle
				if len(displayHandle) > 8 {
					displayHandle = displayHandle[:8]
				}

				status := record.Status
				if status == "error" {
					status = color.Red.Sprint(status)
				}

				table.Append([]string{
					displayHandle,
					record.Name,
					fmt.Sprintf("%d", record.Size),
					status,
					record.FileID,
					record.FinishedAt,
					record.Message,
				})
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning journal: ", err)
	}

	table.Render()
	fmt.Printf("\n%d journal entries\n", count)
}
