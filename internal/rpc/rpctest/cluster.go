// Package rpctest runs an in-process fake cluster for tests. It answers the
// JSON-RPC methods the client uses and applies system create-account-with-seed
// and number-store instructions to an in-memory account table.
package rpctest

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/rpc/v2/json2"

	"solhello/internal/crypto"
	"solhello/internal/domain"
	"solhello/internal/protocol/instruction"
	"solhello/internal/protocol/transaction"
)

const (
	// FeePerSignature is what getFeeForMessage charges per required signature.
	FeePerSignature = 5000
	// Blockhash is the fixed blockhash served by getLatestBlockhash.
	Blockhash = "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"
)

// RentExempt mirrors the cluster's rent formula for an account of size bytes.
func RentExempt(size uint64) domain.Lamports {
	return domain.Lamports((128 + size) * 3480 * 2)
}

type request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *json2.Error    `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Cluster is a fake cluster backed by an httptest.Server.
type Cluster struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[domain.PublicKey]*domain.AccountInfo
	statuses map[domain.Signature]bool
	calls    []string
	sent     []transaction.Transaction
	airdrops []domain.Lamports
	failures map[string]*json2.Error
	failTx   bool
}

// New starts a fake cluster that is closed when the test ends.
func New(t testing.TB) *Cluster {
	t.Helper()
	c := &Cluster{
		accounts: make(map[domain.PublicKey]*domain.AccountInfo),
		statuses: make(map[domain.Signature]bool),
		failures: make(map[string]*json2.Error),
	}
	c.Server = httptest.NewServer(http.HandlerFunc(c.serve))
	t.Cleanup(c.Server.Close)
	return c
}

// URL is the endpoint to point a client at.
func (c *Cluster) URL() string { return c.Server.URL }

// SetAccount installs or replaces an account.
func (c *Cluster) SetAccount(key domain.PublicKey, info domain.AccountInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := info
	cp.Data = append([]byte(nil), info.Data...)
	c.accounts[key] = &cp
}

// Account returns a copy of an account, or nil.
func (c *Cluster) Account(key domain.PublicKey) *domain.AccountInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.accounts[key]
	if !ok {
		return nil
	}
	cp := *a
	cp.Data = append([]byte(nil), a.Data...)
	return &cp
}

// DeployProgram installs an executable account at id.
func (c *Cluster) DeployProgram(id domain.PublicKey) {
	c.SetAccount(id, domain.AccountInfo{Lamports: 1, Executable: true, Owner: domain.PublicKey{2}})
}

// Fail makes every call to method return an RPC error with message.
func (c *Cluster) Fail(method, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[method] = &json2.Error{Code: json2.E_SERVER, Message: message}
}

// FailTransactions makes submitted transactions report an execution error.
func (c *Cluster) FailTransactions() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failTx = true
}

// Calls returns the RPC methods invoked so far, in order.
func (c *Cluster) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// Sent returns the transactions submitted so far.
func (c *Cluster) Sent() []transaction.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]transaction.Transaction(nil), c.sent...)
}

// Airdrops returns the airdrop amounts requested so far.
func (c *Cluster) Airdrops() []domain.Lamports {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Lamports(nil), c.airdrops...)
}

func (c *Cluster) serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.mu.Lock()
	c.calls = append(c.calls, req.Method)
	fail := c.failures[req.Method]
	var (
		result any
		rpcErr *json2.Error
	)
	if fail != nil {
		rpcErr = fail
	} else {
		result, rpcErr = c.handle(req)
	}
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Version: "2.0", Result: result, Error: rpcErr, ID: req.ID})
}

func invalidParams(err error) *json2.Error {
	return &json2.Error{Code: json2.E_BAD_PARAMS, Message: err.Error()}
}

func (c *Cluster) param(req request, i int, out any) error {
	if i >= len(req.Params) {
		return fmt.Errorf("missing param %d", i)
	}
	return json.Unmarshal(req.Params[i], out)
}

func (c *Cluster) key(req request, i int) (domain.PublicKey, error) {
	var s string
	if err := c.param(req, i, &s); err != nil {
		return domain.PublicKey{}, err
	}
	return domain.PublicKeyFromBase58(s)
}

func withContext(value any) map[string]any {
	return map[string]any{"context": map[string]any{"slot": 1}, "value": value}
}

// handle runs with c.mu held.
func (c *Cluster) handle(req request) (any, *json2.Error) {
	switch req.Method {
	case "getVersion":
		return domain.Version{SolanaCore: "1.18.26", FeatureSet: 3241752014}, nil

	case "getBalance":
		k, err := c.key(req, 0)
		if err != nil {
			return nil, invalidParams(err)
		}
		var bal uint64
		if a, ok := c.accounts[k]; ok {
			bal = uint64(a.Lamports)
		}
		return withContext(bal), nil

	case "getAccountInfo":
		k, err := c.key(req, 0)
		if err != nil {
			return nil, invalidParams(err)
		}
		a, ok := c.accounts[k]
		if !ok {
			return withContext(nil), nil
		}
		return withContext(map[string]any{
			"lamports":   uint64(a.Lamports),
			"owner":      a.Owner.String(),
			"executable": a.Executable,
			"rentEpoch":  a.RentEpoch,
			"data":       []string{crypto.B64(a.Data), "base64"},
		}), nil

	case "getMinimumBalanceForRentExemption":
		var size uint64
		if err := c.param(req, 0, &size); err != nil {
			return nil, invalidParams(err)
		}
		return uint64(RentExempt(size)), nil

	case "getLatestBlockhash":
		return withContext(map[string]any{"blockhash": Blockhash, "lastValidBlockHeight": 300}), nil

	case "getFeeForMessage":
		var b64 string
		if err := c.param(req, 0, &b64); err != nil {
			return nil, invalidParams(err)
		}
		raw, err := crypto.FromB64(b64)
		if err != nil || len(raw) == 0 {
			return nil, invalidParams(fmt.Errorf("bad message"))
		}
		return withContext(uint64(raw[0]) * FeePerSignature), nil

	case "requestAirdrop":
		k, err := c.key(req, 0)
		if err != nil {
			return nil, invalidParams(err)
		}
		var amount uint64
		if err := c.param(req, 1, &amount); err != nil {
			return nil, invalidParams(err)
		}
		c.credit(k, domain.Lamports(amount))
		c.airdrops = append(c.airdrops, domain.Lamports(amount))
		sig := c.fakeSignature(req.Method, k[:], binary.LittleEndian.AppendUint64(nil, amount))
		c.statuses[sig] = true
		return sig.String(), nil

	case "sendTransaction":
		var b64 string
		if err := c.param(req, 0, &b64); err != nil {
			return nil, invalidParams(err)
		}
		wire, err := crypto.FromB64(b64)
		if err != nil {
			return nil, invalidParams(err)
		}
		tx, err := transaction.Parse(wire)
		if err != nil {
			return nil, invalidParams(err)
		}
		if err := c.apply(tx); err != nil {
			return nil, &json2.Error{Code: json2.E_SERVER, Message: err.Error()}
		}
		c.sent = append(c.sent, tx)
		c.statuses[tx.ID()] = !c.failTx
		return tx.ID().String(), nil

	case "getSignatureStatuses":
		var sigs []string
		if err := c.param(req, 0, &sigs); err != nil {
			return nil, invalidParams(err)
		}
		out := make([]any, len(sigs))
		for i, s := range sigs {
			sig, err := domain.SignatureFromBase58(s)
			if err != nil {
				return nil, invalidParams(err)
			}
			ok, known := c.statuses[sig]
			if !known {
				continue
			}
			st := map[string]any{"slot": 2, "confirmations": 0, "err": nil, "confirmationStatus": "confirmed"}
			if !ok {
				st["err"] = map[string]any{"InstructionError": []any{0, "InvalidInstructionData"}}
			}
			out[i] = st
		}
		return withContext(out), nil
	}
	return nil, &json2.Error{Code: json2.E_NO_METHOD, Message: "method not found: " + req.Method}
}

func (c *Cluster) credit(k domain.PublicKey, amount domain.Lamports) {
	a, ok := c.accounts[k]
	if !ok {
		a = &domain.AccountInfo{}
		c.accounts[k] = a
	}
	a.Lamports += amount
}

func (c *Cluster) fakeSignature(parts ...any) domain.Signature {
	h := sha256.New()
	fmt.Fprint(h, parts...)
	fmt.Fprint(h, len(c.statuses))
	var sig domain.Signature
	copy(sig[:], h.Sum(nil))
	copy(sig[32:], h.Sum(nil))
	return sig
}

// apply verifies signatures and executes the instructions the fake understands.
func (c *Cluster) apply(tx transaction.Transaction) error {
	msg, err := tx.Message.Serialize()
	if err != nil {
		return err
	}
	for i, signer := range tx.Message.Signers() {
		if i >= len(tx.Signatures) || !crypto.Verify(signer, msg, tx.Signatures[i]) {
			return fmt.Errorf("signature verification failed for %s", signer)
		}
	}
	fee := domain.Lamports(len(tx.Signatures) * FeePerSignature)
	payer := c.accounts[tx.Message.AccountKeys[0]]
	if payer == nil || payer.Lamports < fee {
		return fmt.Errorf("insufficient funds for fee")
	}
	payer.Lamports -= fee

	for _, ci := range tx.Message.Instructions {
		ix, err := tx.Message.Decompile(ci)
		if err != nil {
			return err
		}
		if ix.ProgramID == instruction.SystemProgramID {
			if err := c.createAccountWithSeed(ix); err != nil {
				return err
			}
			continue
		}
		if c.failTx || len(ix.Accounts) == 0 {
			continue
		}
		target, ok := c.accounts[ix.Accounts[0].PublicKey]
		if !ok || target.Owner != ix.ProgramID {
			return fmt.Errorf("account %s not owned by program", ix.Accounts[0].PublicKey)
		}
		if len(ix.Data) == domain.GreetingAccountSize && len(target.Data) >= domain.GreetingAccountSize {
			copy(target.Data, ix.Data)
		}
	}
	return nil
}

func (c *Cluster) createAccountWithSeed(ix domain.Instruction) error {
	d := ix.Data
	if len(d) < 4+32+8 || binary.LittleEndian.Uint32(d) != 3 {
		return fmt.Errorf("unsupported system instruction")
	}
	seedLen := binary.LittleEndian.Uint64(d[36:44])
	rest := d[44:]
	if uint64(len(rest)) != seedLen+8+8+32 {
		return fmt.Errorf("malformed create account with seed")
	}
	lamports := binary.LittleEndian.Uint64(rest[seedLen:])
	space := binary.LittleEndian.Uint64(rest[seedLen+8:])
	var owner domain.PublicKey
	copy(owner[:], rest[seedLen+16:])

	from := c.accounts[ix.Accounts[0].PublicKey]
	if from == nil || uint64(from.Lamports) < lamports {
		return fmt.Errorf("insufficient funds for new account")
	}
	newKey := ix.Accounts[1].PublicKey
	if _, exists := c.accounts[newKey]; exists {
		return fmt.Errorf("account %s already in use", newKey)
	}
	from.Lamports -= domain.Lamports(lamports)
	c.accounts[newKey] = &domain.AccountInfo{
		Lamports: domain.Lamports(lamports),
		Owner:    owner,
		Data:     make([]byte, space),
	}
	return nil
}
