package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/internal/core/domain"
)

const swapGasLimit = uint64(300000)

// Client signs and submits transactions with a local private key. It is the
// concrete WalletClient behind the trade path.
type Client struct {
	eth        *ethclient.Client
	chainID    *big.Int
	privateKey *ecdsa.PrivateKey
	address    common.Address
	log        *zap.Logger
}

// NewClient parses the key and dials the RPC endpoint, retrying the dial with
// exponential backoff so a briefly unreachable node does not kill startup.
func NewClient(ctx context.Context, rpcEndpoint, privateKeyHex string, chainID int64, log *zap.Logger) (*Client, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("error casting public key to ECDSA")
	}
	address := crypto.PubkeyToAddress(*publicKey)

	var eth *ethclient.Client
	dial := func() error {
		var dialErr error
		eth, dialErr = ethclient.DialContext(ctx, rpcEndpoint)
		return dialErr
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(dial, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	return &Client{
		eth:        eth,
		chainID:    big.NewInt(chainID),
		privateKey: privateKey,
		address:    address,
		log:        log,
	}, nil
}

func (c *Client) Address() common.Address {
	return c.address
}

// Contract binds a parsed ABI to a deployed address.
func (c *Client) Contract(address common.Address, abiJSON string) (domain.Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}
	return &boundContract{wallet: c, address: address, abi: parsed}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

type boundContract struct {
	wallet  *Client
	address common.Address
	abi     abi.ABI
}

// Transact packs the method call, signs a legacy transaction and submits it.
func (b *boundContract) Transact(ctx context.Context, method string, value *big.Int, args ...interface{}) (domain.Transaction, error) {
	data, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	w := b.wallet

	gasPrice, err := w.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	nonce, err := w.eth.PendingNonceAt(ctx, w.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get account nonce: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, b.address, value, swapGasLimit, gasPrice, data)

	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(w.chainID), w.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.eth.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	w.log.Debug("transaction sent",
		zap.String("method", method),
		zap.Stringer("to", b.address),
		zap.Stringer("tx", signedTx.Hash()))

	return &pendingTx{eth: w.eth, tx: signedTx}, nil
}

type pendingTx struct {
	eth *ethclient.Client
	tx  *ethtypes.Transaction
}

func (p *pendingTx) Hash() common.Hash {
	return p.tx.Hash()
}

// Wait blocks until the transaction is mined and checks its status.
func (p *pendingTx) Wait(ctx context.Context) (*ethtypes.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.eth, p.tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction: %w", err)
	}
	if receipt.Status == ethtypes.ReceiptStatusFailed {
		return nil, fmt.Errorf("transaction %s reverted", p.tx.Hash().Hex())
	}
	return receipt, nil
}
