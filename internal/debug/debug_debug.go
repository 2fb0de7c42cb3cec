//go:build debug

package debug

import "log"

func Printf(msg string, args ...any) {
	log.Printf("debug: "+msg, args...)
}

const On = true
