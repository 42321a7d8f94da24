package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// CreateAddress derives the address CREATE assigns a new contract:
// the low 20 bytes of keccak256(rlp([sender, nonce])) (spec §4.8).
func CreateAddress(sender common.Address, nonce uint64) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{sender, nonce})
	return common.BytesToAddress(crypto.Keccak256(data)[12:])
}

// CreateAddress2 derives the address CREATE2 assigns: the low 20
// bytes of keccak256(0xff ++ sender ++ salt ++ keccak256(initcode))
// (EIP-1014, spec §4.8).
func CreateAddress2(sender common.Address, salt [32]byte, initCodeHash []byte) common.Address {
	buf := make([]byte, 0, 1+20+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, salt[:]...)
	buf = append(buf, initCodeHash...)
	return common.BytesToAddress(crypto.Keccak256(buf)[12:])
}
