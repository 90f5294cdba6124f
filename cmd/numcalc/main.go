// Command numcalc applies numerical methods to formulas of one variable.
//
// Without -method, numcalc serves requests over HTTP:
//
//	numcalc -http :5000
//
//	POST /compute  apply a method, see numerics.Params for the request body
//	GET  /health   liveness check
//
// The address defaults to the value of $PORT, or :5000 if that is unset.
//
// With -method, numcalc performs a single computation and prints the
// response as JSON, optionally rendering its plot to a PNG or SVG file:
//
//	numcalc -method bisection -f 'x^3 - x - 2' -a 1 -b 2 -plot root.png
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"honnef.co/go/numerics"
)

func main() {
	var p numerics.Params
	httpAddr := flag.String("http", defaultAddr(), "serve HTTP on `address`")
	plotPath := flag.String("plot", "", "render the plot to `file` (.png or .svg)")
	flag.StringVar(&p.Method, "method", "", "compute once with `method`: bisection, itp, newton, lagrange, diff, trap, simpson13, simpson38 or gauss")
	flag.StringVar(&p.Function, "f", "", "the function of x, e.g. 'sin(x) - x/2'")
	flag.StringVar(&p.DiffMethod, "diff", "", "difference formula: forward, backward or central")
	numberVar(&p.Tolerance, "tol", "stopping tolerance of root finders")
	numberVar(&p.MaxIter, "max-iter", "iteration limit of root finders")
	numberVar(&p.A, "a", "lower end of the interval")
	numberVar(&p.B, "b", "upper end of the interval")
	numberVar(&p.X0, "x0", "starting point of Newton-Raphson")
	numberVar(&p.XEval, "x-eval", "point at which to evaluate the interpolating polynomial")
	numberVar(&p.X, "x", "point at which to differentiate")
	numberVar(&p.N, "n", "number of sub-intervals for quadrature")
	listVar(&p.XPoints, "xs", "comma-separated x samples for interpolation")
	listVar(&p.YPoints, "ys", "comma-separated y samples for interpolation")
	flag.Parse()

	if p.Method == "" {
		serve(*httpAddr)
		return
	}
	if err := computeOnce(&p, *plotPath); err != nil {
		fmt.Fprintln(os.Stderr, "numcalc:", err)
		os.Exit(1)
	}
}

func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":5000"
}

func numberVar(dst **numerics.Number, name, usage string) {
	flag.Func(name, usage, func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		n := numerics.Number(v)
		*dst = &n
		return nil
	})
}

func listVar(dst *numerics.Numbers, name, usage string) {
	flag.Func(name, usage, func(s string) error {
		vs, err := numerics.ParseFloats(s)
		if err != nil {
			return err
		}
		*dst = vs
		return nil
	})
}

func computeOnce(p *numerics.Params, plotPath string) error {
	req, err := p.Request()
	if err != nil {
		return err
	}
	resp, err := numerics.Run(req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if plotPath != "" {
		return renderPlot(resp, plotPath)
	}
	return nil
}

func serve(addr string) {
	log.Printf("numcalc listening on %s", addr)
	log.Printf("  POST /compute  apply a numerical method")
	log.Printf("  GET  /health   health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
