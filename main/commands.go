package main

import (
	"fmt"
	"io"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	pricecodec "github.com/CoinSummer/price-codec"
)

type app struct {
	configPath string
	logLevel   string
	decimal    bool
	decimals   uint8
	fee        int
	codec      *pricecodec.Codec
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "pricecodec",
		Short:             "Convert between ticks, Q64.96 sqrt prices and WAD prices",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config with codec tick bounds")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the config")

	root.AddCommand(
		a.command("tick-to-sqrt <tick>", "Tick to sqrt price (Q64.96)", a.tickToSqrt),
		a.command("sqrt-to-tick <sqrtPriceX96>", "Sqrt price to floor tick", a.sqrtToTick),
		a.command("tick-to-wad <tick>", "Tick to WAD price", a.tickToWad),
		a.priceCommand("wad-to-tick <price>", "WAD price to floor tick", a.wadToTick),
		a.command("sqrt-to-wad <sqrtPriceX96>", "Sqrt price to WAD price", a.sqrtToWad),
		a.priceCommand("wad-to-sqrt <price>", "WAD price to sqrt price", a.wadToSqrt),
		a.decimalsCommand("decimals-to-wad <amount>", "Token amount to WAD", a.decimalsToWad),
		a.decimalsCommand("wad-to-decimals <amount>", "WAD amount to token decimals", a.wadToDecimals),
		a.feeCommand("usable-tick <tick>", "Nearest tick usable by a fee tier", a.usableTick),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := pricecodec.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())

	a.codec, err = cfg.NewCodec()
	return err
}

type convertFunc func(out io.Writer, arg string) error

func (a *app) command(use, short string, run convertFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.WithFields(logrus.Fields{"cmd": cmd.Name(), "input": args[0]}).Debug("convert")
			return run(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) priceCommand(use, short string, run convertFunc) *cobra.Command {
	cmd := a.command(use, short, run)
	cmd.Flags().BoolVar(&a.decimal, "decimal", false, "read the price as a decimal number instead of a WAD integer")
	return cmd
}

func (a *app) decimalsCommand(use, short string, run convertFunc) *cobra.Command {
	cmd := a.command(use, short, run)
	cmd.Flags().Uint8Var(&a.decimals, "decimals", 18, "token decimals (0-18)")
	return cmd
}

func (a *app) feeCommand(use, short string, run convertFunc) *cobra.Command {
	cmd := a.command(use, short, run)
	cmd.Flags().IntVar(&a.fee, "fee", int(pricecodec.FeeAmountMedium), "pool fee tier in hundredths of a bip (500, 3000, 10000)")
	return cmd
}

func (a *app) parsePrice(s string) (*uint256.Int, error) {
	if !a.decimal {
		return pricecodec.ParseUint256(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return pricecodec.DecimalToWad(d)
}

func printWad(out io.Writer, wad *uint256.Int) error {
	_, err := fmt.Fprintf(out, "%s (%s)\n", wad.Dec(), pricecodec.WadToDecimal(wad).String())
	return err
}

func (a *app) tickToSqrt(out io.Writer, arg string) error {
	tick, err := a.codec.ParseTick(arg)
	if err != nil {
		return err
	}
	sqrtPriceX96, err := a.codec.TickToSqrtX96(tick)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, sqrtPriceX96.Dec())
	return err
}

func (a *app) sqrtToTick(out io.Writer, arg string) error {
	sqrtPriceX96, err := pricecodec.ParseUint256(arg)
	if err != nil {
		return err
	}
	tick, err := a.codec.SqrtX96ToTick(sqrtPriceX96)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, tick)
	return err
}

func (a *app) tickToWad(out io.Writer, arg string) error {
	tick, err := a.codec.ParseTick(arg)
	if err != nil {
		return err
	}
	wad, err := a.codec.TickToWad(tick)
	if err != nil {
		return err
	}
	return printWad(out, wad)
}

func (a *app) wadToTick(out io.Writer, arg string) error {
	price, err := a.parsePrice(arg)
	if err != nil {
		return err
	}
	tick, err := a.codec.WadToTick(price)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, tick)
	return err
}

func (a *app) sqrtToWad(out io.Writer, arg string) error {
	sqrtPriceX96, err := pricecodec.ParseUint256(arg)
	if err != nil {
		return err
	}
	wad, err := a.codec.SqrtX96ToWad(sqrtPriceX96)
	if err != nil {
		return err
	}
	return printWad(out, wad)
}

func (a *app) wadToSqrt(out io.Writer, arg string) error {
	price, err := a.parsePrice(arg)
	if err != nil {
		return err
	}
	sqrtPriceX96, err := a.codec.WadToSqrtX96(price)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, sqrtPriceX96.Dec())
	return err
}

func (a *app) decimalsToWad(out io.Writer, arg string) error {
	amount, err := pricecodec.ParseUint256(arg)
	if err != nil {
		return err
	}
	wad, err := pricecodec.DecimalsToWad(amount, a.decimals)
	if err != nil {
		return err
	}
	return printWad(out, wad)
}

func (a *app) wadToDecimals(out io.Writer, arg string) error {
	wad, err := pricecodec.ParseUint256(arg)
	if err != nil {
		return err
	}
	amount, err := pricecodec.WadToDecimals(wad, a.decimals)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, amount.Dec())
	return err
}

func (a *app) usableTick(out io.Writer, arg string) error {
	spacing, ok := pricecodec.TICK_SPACINGS[pricecodec.FeeAmount(a.fee)]
	if !ok {
		return fmt.Errorf("unknown fee tier %d", a.fee)
	}
	tick, err := a.codec.ParseTick(arg)
	if err != nil {
		return err
	}
	usable, err := a.codec.NearestUsableTick(tick, spacing)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, usable)
	return err
}
