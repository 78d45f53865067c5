package pricecodec

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

var (
	TOPIC_INITIALIZE = common.HexToHash("0x98636036cb66a9c19a37435efc1e90142190214e8abeb821bdba3f2990dd4c95")
	TOPIC_SWAP       = common.HexToHash("0xc42079f94a6350d7e6235f29174924f928cc2ac818eb64fed8004e115fbcca67")
	TOPIC_MINT       = common.HexToHash("0x7a53080ba414158be7ec69b987b5fb7d07dee101fe85488f0853ae16239d0bde")
	TOPIC_BURN       = common.HexToHash("0x0c396cd989a39f4459b5fa1aed6a9a8dcdbc45908acfd67e028cd568da98982c")
)

var (
	int24, _    = abi.NewType("int24", "", nil)
	int256, _   = abi.NewType("int256", "", nil)
	uint160, _  = abi.NewType("uint160", "", nil)
	uint128, _  = abi.NewType("uint128", "", nil)
	uint256T, _ = abi.NewType("uint256", "", nil)
	address, _  = abi.NewType("address", "", nil)

	initializeArgs = abi.Arguments{{Name: "sqrtPriceX96", Type: uint160}, {Name: "tick", Type: int24}}
	swapArgs       = abi.Arguments{
		{Name: "amount0", Type: int256},
		{Name: "amount1", Type: int256},
		{Name: "sqrtPriceX96", Type: uint160},
		{Name: "liquidity", Type: uint128},
		{Name: "tick", Type: int24},
	}
	mintArgs = abi.Arguments{
		{Name: "sender", Type: address},
		{Name: "amount", Type: uint128},
		{Name: "amount0", Type: uint256T},
		{Name: "amount1", Type: uint256T},
	}
	burnArgs = abi.Arguments{
		{Name: "amount", Type: uint128},
		{Name: "amount0", Type: uint256T},
		{Name: "amount1", Type: uint256T},
	}
	tickArgs      = abi.Arguments{{Type: int24}}
	sqrtPriceArgs = abi.Arguments{{Type: uint160}}

	minInt24 = big.NewInt(-1 << 23)
	maxInt24 = big.NewInt(1<<23 - 1)
)

type InitializeEvent struct {
	RawEvent     *types.Log   `json:"raw_event"`
	SqrtPriceX96 *uint256.Int `json:"sqrt_price_x96"`
	Tick         int          `json:"tick"`
}

type SwapEvent struct {
	RawEvent     *types.Log     `json:"raw_event"`
	Sender       common.Address `json:"sender"`
	Recipient    common.Address `json:"to"`
	Amount0      *big.Int       `json:"amount0"`
	Amount1      *big.Int       `json:"amount1"`
	SqrtPriceX96 *uint256.Int   `json:"sqrt_price_x96"`
	Liquidity    *uint256.Int   `json:"liquidity"`
	Tick         int            `json:"tick"`
}

// MintEvent is a pool Mint. TickLower and TickUpper are checked against the
// codec that parsed it.
type MintEvent struct {
	RawEvent  *types.Log     `json:"raw_event"`
	Owner     common.Address `json:"owner"`
	Sender    common.Address `json:"sender"`
	TickLower int            `json:"tick_lower"`
	TickUpper int            `json:"tick_upper"`
	Amount    *uint256.Int   `json:"amount"`
	Amount0   *uint256.Int   `json:"amount0"`
	Amount1   *uint256.Int   `json:"amount1"`
}

type BurnEvent struct {
	RawEvent  *types.Log     `json:"raw_event"`
	Owner     common.Address `json:"owner"`
	TickLower int            `json:"tick_lower"`
	TickUpper int            `json:"tick_upper"`
	Amount    *uint256.Int   `json:"amount"`
	Amount0   *uint256.Int   `json:"amount0"`
	Amount1   *uint256.Int   `json:"amount1"`
}

// Slot0 is the price part of a pool's slot0() return data.
type Slot0 struct {
	SqrtPriceX96 *uint256.Int `json:"sqrt_price_x96"`
	Tick         int          `json:"tick"`
}

func ParseInitializeEvent(log *types.Log) (*InitializeEvent, error) {
	if len(log.Topics) != 1 || log.Topics[0] != TOPIC_INITIALIZE {
		return nil, fmt.Errorf("not an initialize event, tx: %s", log.TxHash)
	}
	values, err := initializeArgs.Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpack initialize event, tx: %s: %w", log.TxHash, err)
	}
	sqrtPriceX96, err := readUint(values[0], "sqrtPriceX96")
	if err != nil {
		return nil, err
	}
	tick, err := readInt24(values[1])
	if err != nil {
		return nil, err
	}
	return &InitializeEvent{RawEvent: log, SqrtPriceX96: sqrtPriceX96, Tick: tick}, nil
}

func ParseSwapEvent(log *types.Log) (*SwapEvent, error) {
	if len(log.Topics) != 3 {
		return nil, fmt.Errorf("topic not match, expect %d, got %d", 3, len(log.Topics))
	}
	if log.Topics[0] != TOPIC_SWAP {
		return nil, fmt.Errorf("not a swap event, tx: %s", log.TxHash)
	}
	values, err := swapArgs.Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpack swap event, tx: %s: %w", log.TxHash, err)
	}
	amount0, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse swap err amount0 not a int")
	}
	amount1, ok := values[1].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse swap err amount1 not a int")
	}
	sqrtPriceX96, err := readUint(values[2], "sqrtPriceX96")
	if err != nil {
		return nil, err
	}
	liquidity, err := readUint(values[3], "liquidity")
	if err != nil {
		return nil, err
	}
	tick, err := readInt24(values[4])
	if err != nil {
		return nil, err
	}
	return &SwapEvent{
		RawEvent:     log,
		Sender:       common.BytesToAddress(log.Topics[1].Bytes()),
		Recipient:    common.BytesToAddress(log.Topics[2].Bytes()),
		Amount0:      amount0,
		Amount1:      amount1,
		SqrtPriceX96: sqrtPriceX96,
		Liquidity:    liquidity,
		Tick:         tick,
	}, nil
}

// ParseMintEvent decodes a Mint log. Both position ticks must be valid for the
// codec and ordered.
func (c *Codec) ParseMintEvent(log *types.Log) (*MintEvent, error) {
	if err := checkTopics(log, TOPIC_MINT, "mint"); err != nil {
		return nil, err
	}
	tickLower, tickUpper, err := c.positionTicks(log)
	if err != nil {
		return nil, err
	}
	values, err := mintArgs.Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpack mint event, tx: %s: %w", log.TxHash, err)
	}
	sender, ok := values[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("parse mint err sender not an address")
	}
	amounts, err := readUints(values[1:], "amount", "amount0", "amount1")
	if err != nil {
		return nil, err
	}
	return &MintEvent{
		RawEvent:  log,
		Owner:     common.BytesToAddress(log.Topics[1].Bytes()),
		Sender:    sender,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Amount:    amounts[0],
		Amount0:   amounts[1],
		Amount1:   amounts[2],
	}, nil
}

// ParseBurnEvent decodes a Burn log with the same tick checks as ParseMintEvent.
func (c *Codec) ParseBurnEvent(log *types.Log) (*BurnEvent, error) {
	if err := checkTopics(log, TOPIC_BURN, "burn"); err != nil {
		return nil, err
	}
	tickLower, tickUpper, err := c.positionTicks(log)
	if err != nil {
		return nil, err
	}
	values, err := burnArgs.Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpack burn event, tx: %s: %w", log.TxHash, err)
	}
	amounts, err := readUints(values, "amount", "amount0", "amount1")
	if err != nil {
		return nil, err
	}
	return &BurnEvent{
		RawEvent:  log,
		Owner:     common.BytesToAddress(log.Topics[1].Bytes()),
		TickLower: tickLower,
		TickUpper: tickUpper,
		Amount:    amounts[0],
		Amount0:   amounts[1],
		Amount1:   amounts[2],
	}, nil
}

func ParseMintEvent(log *types.Log) (*MintEvent, error) {
	return Default.ParseMintEvent(log)
}

func ParseBurnEvent(log *types.Log) (*BurnEvent, error) {
	return Default.ParseBurnEvent(log)
}

// checkTopics expects the signature, owner, tickLower and tickUpper topics.
func checkTopics(log *types.Log, signature common.Hash, name string) error {
	if len(log.Topics) != 4 {
		return fmt.Errorf("topic not match, expect %d, got %d", 4, len(log.Topics))
	}
	if log.Topics[0] != signature {
		return fmt.Errorf("not a %s event, tx: %s", name, log.TxHash)
	}
	return nil
}

// positionTicks reads the indexed int24 ticks of a Mint or Burn log.
func (c *Codec) positionTicks(log *types.Log) (int, int, error) {
	tickLower := int(ForceAsInt24(new(uint256.Int).SetBytes(log.Topics[2].Bytes())))
	tickUpper := int(ForceAsInt24(new(uint256.Int).SetBytes(log.Topics[3].Bytes())))
	if err := c.ValidateTick(tickLower); err != nil {
		return 0, 0, err
	}
	if err := c.ValidateTick(tickUpper); err != nil {
		return 0, 0, err
	}
	if tickLower >= tickUpper {
		return 0, 0, &CodecError{
			Kind:   INVALID_TICK,
			Op:     "positionTicks",
			Values: []string{fmt.Sprint(tickLower), fmt.Sprint(tickUpper)},
		}
	}
	return tickLower, tickUpper, nil
}

// DecodeSlot0 reads sqrtPriceX96 and tick from the first two words of
// slot0() return data; the remaining fields are ignored.
func DecodeSlot0(data []byte) (*Slot0, error) {
	if len(data) < 64 {
		return nil, fmt.Errorf("slot0 data too short: %d bytes", len(data))
	}
	values, err := initializeArgs.Unpack(data[:64])
	if err != nil {
		return nil, err
	}
	sqrtPriceX96, err := readUint(values[0], "sqrtPriceX96")
	if err != nil {
		return nil, err
	}
	tick, err := readInt24(values[1])
	if err != nil {
		return nil, err
	}
	return &Slot0{SqrtPriceX96: sqrtPriceX96, Tick: tick}, nil
}

// PackTick ABI-encodes tick as an int24 word.
func PackTick(tick int) ([]byte, error) {
	t := big.NewInt(int64(tick))
	if t.Cmp(minInt24) < 0 || t.Cmp(maxInt24) > 0 {
		return nil, &CodecError{Kind: OVERFLOW, Op: "PackTick", Values: []string{t.String()}}
	}
	return tickArgs.Pack(t)
}

// PackSqrtPriceX96 ABI-encodes a sqrt price as a uint160 word.
func PackSqrtPriceX96(sqrtPriceX96 *uint256.Int) ([]byte, error) {
	if sqrtPriceX96.Gt(MaxUint160) {
		return nil, newError(OVERFLOW, "PackSqrtPriceX96", sqrtPriceX96)
	}
	return sqrtPriceArgs.Pack(sqrtPriceX96.ToBig())
}

// CheckPoolPrice verifies that a pool-reported tick is the floor tick of its
// sqrt price.
func (c *Codec) CheckPoolPrice(sqrtPriceX96 *uint256.Int, tick int) error {
	if err := c.ValidateTick(tick); err != nil {
		return err
	}
	expected, err := c.SqrtX96ToTick(sqrtPriceX96)
	if err != nil {
		return err
	}
	if expected != tick {
		return &CodecError{
			Kind:   INVALID_TICK,
			Op:     "CheckPoolPrice",
			Values: []string{fmt.Sprint(tick), fmt.Sprint(expected), dec(sqrtPriceX96)},
		}
	}
	return nil
}

func readUint(v interface{}, name string) (*uint256.Int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s not a int", name)
	}
	z, overflow := uint256.FromBig(b)
	if overflow || b.Sign() < 0 {
		return nil, fmt.Errorf("%s out of range: %s", name, b)
	}
	return z, nil
}

func readUints(values []interface{}, names ...string) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(names))
	for i, name := range names {
		z, err := readUint(values[i], name)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}
	return out, nil
}

func readInt24(v interface{}) (int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return 0, fmt.Errorf("tick not a int")
	}
	return int(ForceAsInt24(AsUint256(b))), nil
}
