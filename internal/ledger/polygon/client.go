// Package polygon submits content attestations to the verification contract
// on a Polygon network through a JSON-RPC endpoint.
package polygon

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"

	"github.com/imthegoodboy/veristamp/internal/ledger"
)

// contractABI covers the three entry points the service uses
const contractABI = `[
  {"name":"verifyContent","type":"function","stateMutability":"nonpayable","inputs":[{"name":"_contentHash","type":"bytes32"},{"name":"_filecoinCID","type":"string"},{"name":"_contentType","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
  {"name":"checkContentVerification","type":"function","stateMutability":"view","inputs":[{"name":"_contentHash","type":"bytes32"}],"outputs":[{"name":"isVerified","type":"bool"},{"name":"creator","type":"address"},{"name":"timestamp","type":"uint256"},{"name":"filecoinCID","type":"string"},{"name":"contentType","type":"string"}]},
  {"name":"getTotalVerifiedCount","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

// maticUSD is the fixed reference price used for fee conversion
const maticUSD = 0.70

// Config holds the ledger client configuration
type Config struct {
	RPCURL          string
	ContractAddress string
	// PrivateKey is the optional hex-encoded signing key. Without it the
	// client can read the chain but Submit returns ledger.ErrNoSigner.
	PrivateKey string
	ChainID    int64
	GasLimit   uint64
}

// DefaultConfig targets the Polygon Mumbai testnet deployment
func DefaultConfig() Config {
	return Config{
		RPCURL:          "https://rpc-mumbai.maticvigil.com/",
		ContractAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1",
		ChainID:         80001,
		GasLimit:        300_000,
	}
}

// Client is the go-ethereum backed ledger client
type Client struct {
	eth      *ethclient.Client
	abi      abi.ABI
	contract common.Address
	key      *ecdsa.PrivateKey
	chainID  *big.Int
	gasLimit uint64
}

var _ ledger.Client = (*Client)(nil)

// New creates a ledger client. Dialing is lazy for HTTP endpoints, so this
// only fails on malformed configuration.
func New(cfg Config) (*Client, error) {
	eth, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger rpc: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}

	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	var key *ecdsa.PrivateKey
	if cfg.PrivateKey != "" {
		key, err = crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse signing key: %w", err)
		}
	}

	return &Client{
		eth:      eth,
		abi:      parsed,
		contract: common.HexToAddress(cfg.ContractAddress),
		key:      key,
		chainID:  big.NewInt(cfg.ChainID),
		gasLimit: cfg.GasLimit,
	}, nil
}

// Submit calls verifyContent and waits for the transaction to be mined.
// Returns ledger.ErrNoSigner when no signing key is configured.
func (c *Client) Submit(ctx context.Context, contentHash [32]byte, cid string, kind string) (string, error) {
	if c.key == nil {
		return "", ledger.ErrNoSigner
	}

	input, err := c.abi.Pack("verifyContent", contentHash, cid, kind)
	if err != nil {
		return "", fmt.Errorf("pack verifyContent: %w", err)
	}

	from := crypto.PubkeyToAddress(c.key.PublicKey)
	nonce, err := c.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("suggest gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, c.contract, big.NewInt(0), c.gasLimit, gasPrice, input)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, signed)
	if err != nil {
		return "", fmt.Errorf("wait for confirmation: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("transaction %s reverted", receipt.TxHash.Hex())
	}

	return receipt.TxHash.Hex(), nil
}

// Verified reads the on-chain attestation for a fingerprint
func (c *Client) Verified(ctx context.Context, contentHash [32]byte) (*ledger.Attestation, error) {
	out, err := c.call(ctx, "checkContentVerification", contentHash)
	if err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("unexpected checkContentVerification output arity %d", len(out))
	}

	att := &ledger.Attestation{}
	var ok bool
	if att.Verified, ok = out[0].(bool); !ok {
		return nil, fmt.Errorf("unexpected isVerified type %T", out[0])
	}
	if addr, ok := out[1].(common.Address); ok {
		att.Creator = addr.Hex()
	}
	if ts, ok := out[2].(*big.Int); ok && ts.Sign() > 0 {
		att.Timestamp = time.Unix(ts.Int64(), 0).UTC()
	}
	if cid, ok := out[3].(string); ok {
		att.StorageCID = cid
	}
	if kind, ok := out[4].(string); ok {
		att.ContentType = kind
	}

	return att, nil
}

// TotalVerified reads the contract's global attestation counter
func (c *Client) TotalVerified(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "getTotalVerifiedCount")
	if err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("unexpected getTotalVerifiedCount output arity %d", len(out))
	}
	count, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected count type %T", out[0])
	}
	return count.Uint64(), nil
}

// EstimateFee prices a submission at the current gas price times the fixed
// gas budget
func (c *Client) EstimateFee(ctx context.Context) (*ledger.Fee, error) {
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	totalWei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(c.gasLimit))
	native := weiToMatic(totalWei)

	return &ledger.Fee{
		Native: strconv.FormatFloat(native, 'f', 6, 64),
		USD:    strconv.FormatFloat(native*maticUSD, 'f', 4, 64),
	}, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	out, err := c.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}

func weiToMatic(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(params.Ether),
	).Float64()
	return f
}
