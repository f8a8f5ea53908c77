package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"rangerblock/internal/core/domain"
)

// ensureIdentity unlocks the store and loads or creates the node identity.
func (n *node) ensureIdentity(ctx context.Context) (*domain.Identity, error) {
	if err := n.startIdentity(ctx); err != nil {
		return nil, err
	}
	return n.identity.GetOrCreateIdentity(ctx, n.cfg.Identity.Username)
}

func runIdentity(ctx context.Context, n *node, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("identity", flag.ContinueOnError)
	fresh := fs.Bool("new", false, "replace the current identity with a new one")
	username := fs.String("username", n.cfg.Identity.Username, "username for a new identity")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := n.startIdentity(ctx); err != nil {
		return err
	}
	var (
		id  *domain.Identity
		err error
	)
	if *fresh {
		id, err = n.identity.CreateSecureIdentity(ctx, *username)
	} else {
		id, err = n.identity.GetOrCreateIdentity(ctx, *username)
	}
	if err != nil {
		return err
	}

	return printJSON(out, map[string]any{
		"state":     n.identity.State(),
		"identity":  id.Summary(n.identity.HardwareHash()),
		"address":   domain.DeriveAddress(id.PublicKey),
		"publicKey": id.PublicKey,
	})
}

func runIntegrity(ctx context.Context, n *node, _ []string, out io.Writer) error {
	if _, err := n.ensureIdentity(ctx); err != nil {
		return err
	}
	report, err := n.identity.VerifyIdentityIntegrity(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, report)
}

func runSign(ctx context.Context, n *node, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	msg := []byte(strings.Join(args, " "))

	id, err := n.ensureIdentity(ctx)
	if err != nil {
		return err
	}
	sig, err := n.identity.SignMessage(msg)
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"message":   string(msg),
		"signature": sig,
		"verified":  n.identity.VerifyMessage(msg, sig, id.PublicKey),
	})
}

func runToken(ctx context.Context, n *node, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	verify := fs.String("verify", "", "verify TOKEN instead of issuing one")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if _, err := n.ensureIdentity(ctx); err != nil {
		return err
	}
	if *verify != "" {
		return printJSON(out, n.identity.VerifySessionToken(*verify))
	}

	token, expiry, err := n.identity.CreateSessionToken()
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"token":     token,
		"expiresAt": expiry.UTC().Format(time.RFC3339),
	})
}

func runWallet(ctx context.Context, n *node, _ []string, out io.Writer) error {
	if err := n.startLedger(ctx); err != nil {
		return err
	}
	summary, err := n.wallet.Summary(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, summary)
}

func runSend(ctx context.Context, n *node, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	to := fs.String("to", "", "recipient address")
	amount := fs.Float64("amount", 0, "amount to send")
	coin := fs.String("coin", domain.CoinRGD, "coin symbol")
	memo := fs.String("memo", "", "memo")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	if *to == "" || *amount == 0 {
		return errUsage
	}

	if err := n.startLedger(ctx); err != nil {
		return err
	}
	receipt, err := n.bridge.SendTokens(ctx, *to, *amount, strings.ToUpper(*coin), *memo)
	if err != nil {
		return err
	}
	return printJSON(out, receipt)
}

func runMine(ctx context.Context, n *node, _ []string, out io.Writer) error {
	if err := n.startLedger(ctx); err != nil {
		return err
	}
	block, err := n.bridge.MineBlock(ctx)
	if err != nil {
		return err
	}
	if block == nil {
		return printJSON(out, map[string]any{"mined": false, "reason": "no pending transactions"})
	}
	return printJSON(out, map[string]any{"mined": true, "block": block})
}

func runHistory(ctx context.Context, n *node, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", n.cfg.Bridge.HistoryLimit, "maximum entries")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := n.startLedger(ctx); err != nil {
		return err
	}
	entries, err := n.bridge.History(ctx, *limit)
	if err != nil {
		return err
	}
	return printJSON(out, entries)
}

func runStatus(ctx context.Context, n *node, _ []string, out io.Writer) error {
	if err := n.startLedger(ctx); err != nil {
		return err
	}
	status, err := n.bridge.LedgerStatus(ctx)
	if err != nil {
		return err
	}
	vm := n.hardware.DetectVM(ctx)
	return printJSON(out, map[string]any{
		"state":    n.identity.State(),
		"address":  n.wallet.Address(),
		"balances": n.bridge.Balances(n.wallet.Address()),
		"ledger":   status,
		"host":     n.hardware.HostInfo(ctx),
		"vm":       vm,
	})
}

func runPackage(ctx context.Context, n *node, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("package", flag.ContinueOnError)
	outDir := fs.String("out", "", "output directory")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}

	n.unlockForSigning(ctx)
	info, err := n.transfers.Package(ctx, pos[0], *outDir)
	if err != nil {
		return err
	}
	return printJSON(out, info)
}

func runExtract(ctx context.Context, n *node, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	outDir := fs.String("out", ".", "output directory")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}

	n.unlockForSigning(ctx)
	res, err := n.transfers.Extract(ctx, pos[0], *outDir)
	if err != nil {
		return err
	}
	return printJSON(out, res)
}

// unlockForSigning loads the identity when one exists. Packaging still works
// without it, unsigned.
func (n *node) unlockForSigning(ctx context.Context) {
	if err := n.startIdentity(ctx); err != nil {
		n.log.Warn().Err(err).Msg("identity unavailable, packages will be unsigned")
	}
}

func runContract(ctx context.Context, n *node, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "create":
		fs := flag.NewFlagSet("contract create", flag.ContinueOnError)
		to := fs.String("to", "", "receiver id")
		pos, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		if len(pos) != 1 || *to == "" {
			return errUsage
		}
		if _, err := n.ensureIdentity(ctx); err != nil {
			return err
		}
		c, err := n.transfers.CreateContract(ctx, pos[0], *to)
		if err != nil {
			return err
		}
		return printJSON(out, c)

	case "accept":
		fs := flag.NewFlagSet("contract accept", flag.ContinueOnError)
		as := fs.String("as", "", "receiver id (defaults to this node's user id)")
		pos, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		if len(pos) != 1 {
			return errUsage
		}
		id, err := n.ensureIdentity(ctx)
		if err != nil {
			return err
		}
		receiver := *as
		if receiver == "" {
			receiver = id.UserID
		}
		c, err := n.transfers.AcceptContract(ctx, pos[0], receiver)
		if err != nil {
			return err
		}
		return printJSON(out, c)

	case "reject":
		fs := flag.NewFlagSet("contract reject", flag.ContinueOnError)
		reason := fs.String("reason", "", "rejection reason")
		pos, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		if len(pos) != 1 {
			return errUsage
		}
		c, err := n.transfers.RejectContract(ctx, pos[0], *reason)
		if err != nil {
			return err
		}
		return printJSON(out, c)

	case "complete":
		fs := flag.NewFlagSet("contract complete", flag.ContinueOnError)
		outDir := fs.String("out", ".", "output directory")
		pos, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		if len(pos) != 1 {
			return errUsage
		}
		n.unlockForSigning(ctx)
		c, err := n.transfers.CompleteContract(ctx, pos[0], *outDir)
		if err != nil {
			return err
		}
		return printJSON(out, c)

	case "list":
		contracts, err := n.transfers.Contracts(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, contracts)

	default:
		return fmt.Errorf("%w: unknown contract command %q", errUsage, sub)
	}
}
