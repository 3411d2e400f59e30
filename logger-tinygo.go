//go:build tinygo

package rotary

import (
	"machine"
)

func init() {
	globalLogger = &serialLogger{}
}

// serialLogger writes one CRLF-terminated line per message to the board's serial port.
type serialLogger struct{}

func (l *serialLogger) log(level, msg string) {
	line := make([]byte, 0, len("rotary ")+len(level)+len(msg)+2)
	line = append(line, "rotary "...)
	line = append(line, level...)
	line = append(line, msg...)
	line = append(line, '\r', '\n')
	machine.Serial.Write(line)
}

func (l *serialLogger) Debug(msg string) { l.log("[DEBUG] ", msg) }
func (l *serialLogger) Info(msg string)  { l.log("[INFO]  ", msg) }
func (l *serialLogger) Warn(msg string)  { l.log("[WARN]  ", msg) }
func (l *serialLogger) Error(msg string) { l.log("[ERROR] ", msg) }
