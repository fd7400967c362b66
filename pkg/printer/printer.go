package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS data to a thermal receipt printer
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ready reports whether the device can currently be reached
	Ready(ctx context.Context) bool
	Kind() string
}

// Printer kinds accepted by New
const (
	KindUSB     = "usb"
	KindNetwork = "network"
	KindNone    = "none"
)

type usbPrinter struct {
	path string
}

// NewUSBPrinter writes to a device file such as /dev/usb/lp0
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Ready(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Kind() string { return KindUSB }

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter dials a raw TCP printer port, e.g. "192.168.1.100:9100"
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return KindNetwork }

type nullPrinter struct{}

// NewNullPrinter discards everything, for counters without a printer
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) Ready(context.Context) bool          { return false }
func (nullPrinter) Kind() string                        { return KindNone }

// New builds the printer for kind, one of usb, network or none
func New(kind, devicePath, address string) (Printer, error) {
	switch kind {
	case KindUSB:
		if devicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printers")
		}
		return NewUSBPrinter(devicePath), nil
	case KindNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return NewNetworkPrinter(address), nil
	case KindNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", kind)
	}
}
