//go:build !windows && !plan9

package logging

import (
	"io"
	"log/syslog"
)

func openSyslog() (io.WriteCloser, error) {
	return syslog.New(syslog.LOG_DEBUG|syslog.LOG_USER, "chasten")
}
