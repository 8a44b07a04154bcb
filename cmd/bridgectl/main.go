package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/coinforge/btcbridge/binding"
	"github.com/coinforge/btcbridge/bridge"
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/descriptor"
	"github.com/coinforge/btcbridge/loader"
	"github.com/coinforge/btcbridge/marshal"
)

func main() {
	var (
		nativesDir  = flag.String("natives", "", "Release tree with a native artifact catalog (default: in-process core)")
		funcName    = flag.String("call", "", "Boundary function to evaluate")
		argList     = flag.String("args", "", "Arguments for -call (comma-separated)")
		list        = flag.Bool("list", false, "List boundary functions and exit")
		check       = flag.Bool("check", false, "Validate the descriptor and artifact catalog, then exit")
		verbose     = flag.Bool("v", false, "Log bridge internals to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		binding.SetLogger(logger.Named("binding"))
		bridge.SetLogger(logger.Named("bridge"))
		loader.SetLogger(logger.Named("loader"))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*nativesDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*nativesDir, *funcName, *argList, *list, *check); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openBridge(nativesDir string) (*binding.Bridge, error) {
	if nativesDir == "" {
		return binding.OpenInProcess(), nil
	}
	return binding.Open(os.DirFS(nativesDir))
}

func run(nativesDir, funcName, argList string, list, check bool) error {
	desc := descriptor.Bitcoin()
	if check {
		return runCheck(desc, nativesDir)
	}

	b, err := openBridge(nativesDir)
	if err != nil {
		return err
	}
	defer b.Close()

	if list || funcName == "" {
		fmt.Printf("Boundary version: %s\n", descriptor.Version)
		if a := b.Artifact(); a != nil {
			fmt.Printf("Native artifact: %s (%s)\n", a.Path, a.Platform())
		} else {
			fmt.Println("Native core: in-process")
		}
		fmt.Printf("\nFunctions:\n")
		for _, f := range desc.Funcs {
			fmt.Printf("  %s\n", formatFunc(&f))
		}
		if funcName == "" {
			return nil
		}
	}

	var args []string
	if argList != "" {
		args = strings.Split(argList, ",")
	}
	out, err := evalCall(b, funcName, args)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runCheck(desc *descriptor.Descriptor, nativesDir string) error {
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}
	fmt.Printf("Descriptor %s: %d types, %d functions, valid\n",
		descriptor.Version, len(desc.Types), len(desc.Funcs))

	if err := selfTest(); err != nil {
		return fmt.Errorf("wire self-test: %w", err)
	}
	fmt.Println("Wire self-test: ok")

	if nativesDir == "" {
		return nil
	}
	catalog, err := loader.OpenCatalog(os.DirFS(nativesDir), loader.DefaultManifestPath)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog %s: platforms %s\n",
		catalog.Version(), strings.Join(catalog.Platforms(), ", "))
	if err := catalog.Compatible(descriptor.Version); err != nil {
		return err
	}
	for _, p := range catalog.Platforms() {
		osName, arch, _ := strings.Cut(p, "-")
		a, err := catalog.Probe(osName, arch)
		if err != nil {
			return err
		}
		if err := catalog.Verify(a); err != nil {
			return err
		}
		fmt.Printf("  %s: %s ok\n", p, a.Path)
	}
	return nil
}

// selfTest round-trips one sample of every wire type through the codec.
func selfTest() error {
	amount, err := core.AmountFromSat(123_456_789)
	if err != nil {
		return err
	}
	txid, err := core.ParseTxid(strings.Repeat("42", 32))
	if err != nil {
		return err
	}
	rate, err := core.FeeRateFromSatPerVB(25)
	if err != nil {
		return err
	}
	op := core.OutPoint{Txid: txid, Vout: 1}
	script := core.NewScript([]byte{0x6a, 0x01, 0x00})

	e := marshal.NewEncoder()
	defer e.Release()
	if err := marshal.EncodeNetwork(e, core.NetworkSignet); err != nil {
		return err
	}
	marshal.EncodeAmount(e, amount)
	marshal.EncodeFeeRate(e, rate)
	if err := marshal.EncodeScript(e, script); err != nil {
		return err
	}
	if err := marshal.EncodeOutPoint(e, op); err != nil {
		return err
	}

	d := marshal.NewDecoder(e.Bytes())
	n, err := marshal.DecodeNetwork(d)
	if err != nil {
		return err
	}
	a, err := marshal.DecodeAmount(d)
	if err != nil {
		return err
	}
	f, err := marshal.DecodeFeeRate(d)
	if err != nil {
		return err
	}
	s, err := marshal.DecodeScript(d)
	if err != nil {
		return err
	}
	o, err := marshal.DecodeOutPoint(d)
	if err != nil {
		return err
	}
	if err := d.Finish(); err != nil {
		return err
	}

	if n != core.NetworkSignet || a != amount || f != rate || !s.Equal(script) || o != op {
		return fmt.Errorf("round trip changed a value")
	}
	return nil
}

func formatFunc(f *descriptor.FuncDesc) string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.Name+": "+p.Type)
	}
	out := f.Name + "(" + strings.Join(params, ", ") + ")"
	if f.Result != "" {
		out += " -> " + f.Result
	}
	return out
}

// evalCall runs one boundary function by name. Functions returning a
// handle are evaluated as a scope: the object is built, every
// projection of it is printed, and the handle is destroyed again.
func evalCall(b *binding.Bridge, name string, args []string) (string, error) {
	arg := func(i int) string {
		if i < len(args) {
			return strings.TrimSpace(args[i])
		}
		return ""
	}

	switch name {
	case "network-parse":
		n, err := b.ParseNetwork(arg(0))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ordinal %d", uint8(n)), nil

	case "network-name":
		ord, err := strconv.ParseUint(arg(0), 10, 8)
		if err != nil {
			return "", fmt.Errorf("ordinal: %w", err)
		}
		return b.NetworkName(core.Network(ord))

	case "script-new", "script-bytes", "script-type":
		raw, err := decodeHexArg(arg(0))
		if err != nil {
			return "", err
		}
		s, err := b.NewScript(raw)
		if err != nil {
			return "", err
		}
		defer s.Destroy()
		kind, err := s.Type()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d bytes, type %s", len(raw), kind), nil

	case "amount-from-sat", "amount-from-btc", "amount-parse":
		a, err := evalAmount(b, name, arg(0))
		if err != nil {
			return "", err
		}
		defer a.Destroy()
		sat, err := a.Sat()
		if err != nil {
			return "", err
		}
		btc, err := a.BTC()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d sat = %v BTC", sat, btc), nil

	case "amount-sat", "amount-btc", "amount-destroy",
		"script-destroy", "fee-rate-destroy":
		return "", fmt.Errorf("%s needs a live handle; handles are scoped to a single evaluation", name)

	case "fee-rate-from-sat-per-vb", "fee-rate-from-sat-per-kwu",
		"fee-rate-sat-per-vb-ceil", "fee-rate-sat-per-vb-floor", "fee-rate-sat-per-kwu":
		rate, err := strconv.ParseUint(arg(0), 10, 64)
		if err != nil {
			return "", fmt.Errorf("rate: %w", err)
		}
		var f *binding.FeeRate
		if name == "fee-rate-from-sat-per-kwu" {
			f, err = b.FeeRateFromSatPerKWU(rate)
		} else {
			f, err = b.FeeRateFromSatPerVB(rate)
		}
		if err != nil {
			return "", err
		}
		defer f.Destroy()
		kwu, err := f.SatPerKWU()
		if err != nil {
			return "", err
		}
		ceil, err := f.SatPerVBCeil()
		if err != nil {
			return "", err
		}
		floor, err := f.SatPerVBFloor()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d sat/kWU, %d-%d sat/vB", kwu, floor, ceil), nil

	case "txid-parse", "txid-string":
		t, err := b.ParseTxid(arg(0))
		if err != nil {
			return "", err
		}
		return b.TxidString(t)

	case "out-point-string":
		t, err := b.ParseTxid(arg(0))
		if err != nil {
			return "", err
		}
		vout, err := strconv.ParseUint(arg(1), 10, 32)
		if err != nil {
			return "", fmt.Errorf("vout: %w", err)
		}
		return b.OutPointString(core.OutPoint{Txid: t, Vout: uint32(vout)})

	default:
		return "", fmt.Errorf("unknown function %q (see -list)", name)
	}
}

func evalAmount(b *binding.Bridge, name, arg string) (*binding.Amount, error) {
	switch name {
	case "amount-from-sat":
		sat, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("satoshis: %w", err)
		}
		return b.AmountFromSat(sat)
	case "amount-from-btc":
		btc, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("btc: %w", err)
		}
		return b.AmountFromBTC(btc)
	default:
		return b.ParseAmount(arg)
	}
}

func decodeHexArg(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("script hex: %w", err)
	}
	return raw, nil
}
