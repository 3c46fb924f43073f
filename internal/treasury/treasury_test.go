package treasury

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	holder    = common.HexToAddress("0x00000000000000000000000000000000000000f0")
	recipient = common.HexToAddress("0x0000000000000000000000000000000000000a01")
)

func TestVaultDepositAndTransfer(t *testing.T) {
	vault := NewVault()

	vault.Deposit(holder, 100)
	require.Equal(t, int64(100), vault.BalanceOf(holder))

	// 非正数存入被忽略
	vault.Deposit(holder, 0)
	vault.Deposit(holder, -5)
	require.Equal(t, int64(100), vault.BalanceOf(holder))

	require.NoError(t, vault.Transfer(holder, recipient, 40))
	require.Equal(t, int64(60), vault.BalanceOf(holder))
	require.Equal(t, int64(40), vault.BalanceOf(recipient))
}

func TestVaultInsufficientBalance(t *testing.T) {
	vault := NewVault()
	vault.Deposit(holder, 10)

	err := vault.Transfer(holder, recipient, 11)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, int64(10), vault.BalanceOf(holder))
	require.Equal(t, int64(0), vault.BalanceOf(recipient))
}

func TestVaultBlockedRecipient(t *testing.T) {
	vault := NewVault()
	vault.Deposit(holder, 10)
	vault.Block(recipient)

	err := vault.Transfer(holder, recipient, 10)
	require.ErrorIs(t, err, ErrRecipientRejected)
	require.Equal(t, int64(10), vault.BalanceOf(holder))

	vault.Unblock(recipient)
	require.NoError(t, vault.Transfer(holder, recipient, 10))
	require.Equal(t, int64(10), vault.BalanceOf(recipient))
}
