package main

import (
	"fmt"
	"io"

	"hapticglove/host/glove"
	"hapticglove/protocol"
)

// dumpSink prints frames instead of sending them
type dumpSink struct {
	port string
	out  io.Writer
}

func dumpOpener(out io.Writer) glove.SinkOpener {
	return func(port string) (glove.Sink, error) {
		return &dumpSink{port: port, out: out}, nil
	}
}

func (d *dumpSink) Write(b []byte) (int, error) {
	fields, err := protocol.DecodeFrame(b)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(d.out, "%s: % x  (%s strength=%d duration=%gs)\n",
		d.port, b, fields.Location, fields.Strength, fields.Duration)
	return len(b), nil
}

func (d *dumpSink) IsReady() bool {
	return true
}

func (d *dumpSink) Close() error {
	return nil
}
