package main

import (
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wirebuf/wirebuf"
)

func main() {
	var (
		data        = flag.String("data", "", "Payload as hex (or base64 with -base64)")
		useBase64   = flag.Bool("base64", false, "Treat -data as base64 instead of hex")
		schema      = flag.String("schema", "", "Field layout, e.g. u32,string,f32,quat")
		encode      = flag.Bool("encode", false, "Build a payload from -values instead of decoding")
		values      = flag.String("values", "", "Comma-separated values for -encode, components colon-separated (1:2:3)")
		compress    = flag.Bool("compress", true, "Varint integers, quantized floats, packed quaternions")
		decimals    = flag.Uint("decimals", 4, "Decimal places kept by float quantization")
		bits        = flag.Uint("bits", 10, "Bits per packed quaternion component")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg := wirebuf.Config{
		UseCompression:   *compress,
		DecimalPlaces:    uint8(*decimals),
		BitsPerComponent: uint8(*bits),
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *schema == "" {
		fmt.Fprintln(os.Stderr, "Usage: wireview -schema u32,string -data 2a026869")
		fmt.Fprintln(os.Stderr, "       wireview -schema u32,string -encode -values 42,hi")
		fmt.Fprintln(os.Stderr, "       wireview -i  (interactive mode)")
		os.Exit(1)
	}

	var err error
	if *encode {
		err = runEncode(*schema, *values, *useBase64, cfg)
	} else {
		err = runDecode(*schema, *data, *useBase64, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDecode(schemaStr, dataStr string, useBase64 bool, cfg wirebuf.Config) error {
	fields, err := parseSchema(schemaStr)
	if err != nil {
		return err
	}
	payload, err := decodeInput(dataStr, useBase64)
	if err != nil {
		return err
	}

	decoded, err := decodePayload(payload, fields, cfg)
	for _, f := range decoded {
		fmt.Printf("%4d  %-6s %-8s %s\n", f.offset, byteRange(f.size), f.kind, f.value)
	}
	if err != nil {
		return err
	}
	fmt.Printf("\n%d fields, %d bytes\n", len(decoded), len(payload))
	return nil
}

func runEncode(schemaStr, valuesStr string, useBase64 bool, cfg wirebuf.Config) error {
	fields, err := parseSchema(schemaStr)
	if err != nil {
		return err
	}
	payload, err := encodePayload(fields, strings.Split(valuesStr, ","), cfg)
	if err != nil {
		return err
	}
	if useBase64 {
		fmt.Println(base64.StdEncoding.EncodeToString(payload))
	} else {
		fmt.Println(hex.EncodeToString(payload))
	}
	fmt.Fprintf(os.Stderr, "%d bytes\n", len(payload))
	return nil
}

func decodeInput(s string, useBase64 bool) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no payload: pass -data")
	}
	if useBase64 {
		return base64.StdEncoding.DecodeString(s)
	}
	s = strings.ReplaceAll(s, " ", "")
	return hex.DecodeString(s)
}

func byteRange(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}
