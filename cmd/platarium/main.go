package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/PlatariumNetwork/PlatariumCore/core"
	"github.com/PlatariumNetwork/PlatariumCore/internal/api"
)

func main() {
	root := &cobra.Command{Use: "platarium"}
	root.AddCommand(keysCmd())
	root.AddCommand(nodeCmd())
	root.AddCommand(mempoolCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "keys"}
	cmd.AddCommand(keysGenerateCmd())
	cmd.AddCommand(keysSignCmd())
	cmd.AddCommand(keysVerifyCmd())
	return cmd
}

// keysGenerateCmd generates a fresh secp256k1 keypair using OS randomness.
// Key generation sits entirely outside the execution/consensus path the
// core specifies, so crypto/rand (via go-ethereum's GenerateKey) is fine
// here even though the core itself never reads randomness.
func keysGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "generate a secp256k1 keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := crypto.GenerateKey()
			if err != nil {
				return fmt.Errorf("generate keypair: %w", err)
			}
			addr := core.AddressFromPublicKey(&priv.PublicKey)
			fmt.Printf("Address: %s\n", addr)
			fmt.Printf("Public Key: %s\n", hex.EncodeToString(crypto.FromECDSAPub(&priv.PublicKey)))
			fmt.Printf("Private Key: %s\n", hex.EncodeToString(crypto.FromECDSA(priv)))
			return nil
		},
	}
}

func keysSignCmd() *cobra.Command {
	var message, privkeyHex string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "sign a message with a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(message)) {
				return fmt.Errorf("message is not valid JSON")
			}
			privBytes, err := hex.DecodeString(privkeyHex)
			if err != nil {
				return fmt.Errorf("decode private key: %w", err)
			}
			priv, err := crypto.ToECDSA(privBytes)
			if err != nil {
				return fmt.Errorf("parse private key: %w", err)
			}
			sig, err := core.SignMessage([]byte(message), priv)
			if err != nil {
				return fmt.Errorf("sign message: %w", err)
			}
			addr := core.AddressFromPublicKey(&priv.PublicKey)
			fmt.Printf("Address: %s\n", addr)
			fmt.Printf("Signature: %s\n", hex.EncodeToString(sig))
			return nil
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "JSON message to sign")
	cmd.Flags().StringVar(&privkeyHex, "privkey", "", "hex-encoded private key")
	return cmd
}

func keysVerifyCmd() *cobra.Command {
	var message, signatureHex, address string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a signature against an address",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := hex.DecodeString(signatureHex)
			if err != nil {
				return fmt.Errorf("decode signature: %w", err)
			}
			verifier := core.NewECDSAVerifier()
			ok := verifier.Verify([]byte(message), sig, core.Address(address))
			fmt.Printf("Verified: %t\n", ok)
			if !ok {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "JSON message that was signed")
	cmd.Flags().StringVar(&signatureHex, "signature", "", "hex-encoded signature")
	cmd.Flags().StringVar(&address, "address", "", "expected signer address")
	return cmd
}

func nodeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "node"}
	cmd.AddCommand(nodeStatusCmd())
	return cmd
}

// nodeStatusCmd starts the read-only status HTTP surface in the
// foreground, backed by a fresh in-process mempool, registry and state.
// There is no persistence layer in this repository's scope, so the
// exposed state is whatever this process has built up since it started.
func nodeStatusCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "serve the read-only node status API",
		RunE: func(cmd *cobra.Command, args []string) error {
			mempool := core.NewMempool()
			registry := core.NewNodeRegistry(nil)
			state := core.NewState()
			srv := api.NewServer(mempool, registry, state, nil)
			fmt.Printf("serving node status on %s\n", addr)
			return http.ListenAndServe(addr, srv.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func mempoolCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "mempool"}
	cmd.AddCommand(mempoolAddCmd())
	cmd.AddCommand(mempoolListCmd())
	return cmd
}

// mempoolAddCmd builds and submits a single transaction against a fresh,
// process-local mempool, for local testing and demoing of the mempool's
// public contract. It signs the transaction itself (sig_main and
// sig_derived both set from the same key) rather than accepting a
// pre-signed transaction, since this is a demo entry point, not a wallet.
func mempoolAddCmd() *cobra.Command {
	var from, to, assetName, privkeyHex string
	var amount, fee int64
	var nonce uint64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "sign and submit a transaction to a fresh local mempool",
		RunE: func(cmd *cobra.Command, args []string) error {
			privBytes, err := hex.DecodeString(privkeyHex)
			if err != nil {
				return fmt.Errorf("decode private key: %w", err)
			}
			priv, err := crypto.ToECDSA(privBytes)
			if err != nil {
				return fmt.Errorf("parse private key: %w", err)
			}

			asset := core.PLP
			if assetName != "" {
				asset = core.Token(assetName)
			}

			tx, err := core.NewTransaction(core.Address(from), core.Address(to), asset,
				big.NewInt(amount), big.NewInt(fee), nonce, nil, nil, nil, nil)
			if err != nil {
				return fmt.Errorf("build transaction: %w", err)
			}
			message, err := tx.SigningMessage()
			if err != nil {
				return fmt.Errorf("build signing message: %w", err)
			}
			sig, err := core.SignMessage(message, priv)
			if err != nil {
				return fmt.Errorf("sign transaction: %w", err)
			}
			tx.SigMain = sig
			tx.SigDerived = sig

			mempool := core.NewMempool()
			if err := mempool.AddTransaction(tx); err != nil {
				return fmt.Errorf("submit transaction: %w", err)
			}
			fmt.Printf("Hash: %s\n", tx.Hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sender address")
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&assetName, "asset", "", "token name, empty for PLP")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in the asset's minimal unit")
	cmd.Flags().Int64Var(&fee, "fee", 1, "fee in microPLP")
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "sender's expected nonce")
	cmd.Flags().StringVar(&privkeyHex, "privkey", "", "hex-encoded private key")
	return cmd
}

// mempoolListCmd reports a fresh mempool's contents. With no persistence
// layer in scope, this always reports empty; it exists to demonstrate
// GetAllTransactions's shape for operators scripting against the CLI.
func mempoolListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list a fresh local mempool's contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			mempool := core.NewMempool()
			txs := mempool.GetAllTransactions()
			fmt.Printf("%d pending transaction(s)\n", len(txs))
			for _, tx := range txs {
				fmt.Println(tx.Hash)
			}
			return nil
		},
	}
}
