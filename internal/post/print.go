package post

import (
	"log"
	"time"
)

const dateFmt = "2006-01-02 15:04"

func ToStdout(groups map[time.Time]Items) error {
	f := log.Flags()
	log.SetFlags(0)
	for date, items := range groups {
		log.Printf("%s\n", date.Format(dateFmt))
		for i, it := range items {
			log.Printf("#%d %s", i, it)
		}
	}
	log.SetFlags(f)
	return nil
}
