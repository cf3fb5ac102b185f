package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/niksmo/catalog/internal/adapter/fakestore"
	"github.com/niksmo/catalog/internal/adapter/snapshot"
	"github.com/niksmo/catalog/pkg/sigctx"
	"github.com/spf13/pflag"
)

const (
	endpointFlag    = "endpoint"
	outFlag         = "out"
	timeoutFlag     = "timeout"
	maxAttemptsFlag = "max-attempts"
)

type flags struct {
	endpoint    string
	out         string
	timeout     time.Duration
	maxAttempts int
}

func main() {
	sigCtx, stop := sigctx.NotifyContext(context.Background())
	defer stop()

	f := getFlagsValues()
	validateFlags(f)

	printStart(f)
	start := time.Now()

	n, err := makeSnapshot(sigCtx, f)
	if err != nil {
		printFail(err)
		stop()
		fallDown()
	}
	printComplete(n, start)
}

func getFlagsValues() flags {
	var f flags
	pflag.StringVarP(&f.endpoint, endpointFlag, "e", fakestore.DefaultEndpoint, "products endpoint")
	pflag.StringVarP(&f.out, outFlag, "o", "", "snapshot file to write")
	pflag.DurationVarP(&f.timeout, timeoutFlag, "t", 0, "timeout of one attempt, 0 means none")
	pflag.IntVar(&f.maxAttempts, maxAttemptsFlag, 3, "attempts before giving up")
	pflag.Parse()
	return f
}

func validateFlags(f flags) {
	var errs []error

	if f.out == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", outFlag))
	}

	if f.endpoint == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", endpointFlag))
	}

	if len(errs) != 0 {
		fmt.Printf("too few args: %s\n", errors.Join(errs...))
		fallDown()
	}
}

func makeSnapshot(ctx context.Context, f flags) (int, error) {
	client, err := fakestore.New(
		fakestore.EndpointOpt(f.endpoint),
		fakestore.TimeoutOpt(f.timeout),
		fakestore.MaxAttemptsOpt(f.maxAttempts),
	)
	if err != nil {
		return 0, err
	}

	file, err := snapshot.NewFile(f.out)
	if err != nil {
		return 0, err
	}

	ps, err := client.FetchProducts(ctx)
	if err != nil {
		return 0, err
	}

	if err := file.WriteProducts(ctx, ps); err != nil {
		return 0, err
	}
	return len(ps), nil
}

func printStart(f flags) {
	fmt.Printf("fetching products...\n\t- from %q\n\t- into %q\n\n", f.endpoint, f.out)
}

func printComplete(n int, start time.Time) {
	fmt.Printf("%d products written\ncomplete in %s\n", n, time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to make snapshot: \n%s\n", err)
}

func fallDown() {
	os.Exit(2)
}
