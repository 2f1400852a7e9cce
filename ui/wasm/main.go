//go:build js && wasm

// Command wasm exposes the frame decoder to a browser page that reads the
// meter through Web Serial.
package main

import (
	"encoding/hex"
	"syscall/js"

	"dhmeter/core"
	"dhmeter/protocol"
)

var (
	decoder  = protocol.NewDecoder(protocol.MessageMax * 4)
	tickFreq = uint32(core.TickFreqNano)
)

func main() {
	js.Global().Set("dhmeterWasm", js.ValueOf(map[string]interface{}{
		"crc16":        js.FuncOf(crc16Wrapper),
		"decodeFrames": js.FuncOf(decodeFramesWrapper),
		"reset":        js.FuncOf(resetWrapper),
		"version":      protocol.Version,
	}))

	// Keep the program running
	select {}
}

// crc16Wrapper calculates the frame checksum
// Args: hexString (string)
// Returns: number (uint16)
func crc16Wrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(int(protocol.CRC16(data)))
}

// decodeFramesWrapper feeds received bytes to the decoder
// Args: hexString (string)
// Returns: {messages: [...], dropped: number, error: string}
func decodeFramesWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeDecodeResult(nil, "missing hex string argument")
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return makeDecodeResult(nil, "invalid hex string: "+err.Error())
	}

	var out []interface{}
	for _, msg := range decoder.Feed(data) {
		parsed, err := protocol.ParseMessage(msg)
		if err != nil {
			out = append(out, map[string]interface{}{
				"type":  "error",
				"error": err.Error(),
			})
			continue
		}

		switch m := parsed.(type) {
		case *protocol.Identify:
			tickFreq = m.TickFreq
			out = append(out, map[string]interface{}{
				"type":      "identify",
				"version":   m.Version,
				"tickFreq":  int(m.TickFreq),
				"gateTicks": int(m.GateTicks),
				"columns":   int(m.Columns),
			})
		case *protocol.Report:
			s := core.Sample{Pulses: m.Pulses, Ticks: m.Ticks}
			out = append(out, map[string]interface{}{
				"type":   "report",
				"seq":    int(m.Seq),
				"mode":   core.Mode(m.Mode).String(),
				"pulses": int(m.Pulses),
				"ticks":  int(m.Ticks),
				"hz":     int(s.Frequency(tickFreq)),
				"gateMs": int(s.Millis(tickFreq)),
			})
		}
	}
	return makeDecodeResult(out, "")
}

// resetWrapper drops buffered input, e.g. after the port was reopened
func resetWrapper(this js.Value, args []js.Value) interface{} {
	decoder.Reset()
	return js.Undefined()
}

func makeDecodeResult(messages []interface{}, errMsg string) js.Value {
	if messages == nil {
		messages = []interface{}{}
	}
	return js.ValueOf(map[string]interface{}{
		"messages": messages,
		"dropped":  int(decoder.Dropped),
		"error":    errMsg,
	})
}
