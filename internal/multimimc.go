// Package internal holds helpers shared by the hashers that are not part of
// the public API.
package internal

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/mimc7"
)

// MiMC7MaxInputs is the widest input set hashed by a single MiMC7 call.
const MiMC7MaxInputs = 62

// MultiMiMC7 hashes arr with MiMC7. Inputs past MiMC7MaxInputs are split in
// chunks of MiMC7MaxInputs, each chunk is hashed and the result is the hash
// of the chunk digests.
func MultiMiMC7(arr []*big.Int, key *big.Int) (*big.Int, error) {
	if len(arr) <= MiMC7MaxInputs {
		return mimc7.Hash(arr, key)
	} else if len(arr) > MiMC7MaxInputs*MiMC7MaxInputs {
		return nil, fmt.Errorf("too many inputs, max is %d", MiMC7MaxInputs*MiMC7MaxInputs)
	}
	hashed := make([]*big.Int, 0, (len(arr)+MiMC7MaxInputs-1)/MiMC7MaxInputs)
	for i := 0; i < len(arr); i += MiMC7MaxInputs {
		end := min(i+MiMC7MaxInputs, len(arr))
		h, err := mimc7.Hash(arr[i:end], key)
		if err != nil {
			return nil, err
		}
		hashed = append(hashed, h)
	}
	return mimc7.Hash(hashed, key)
}
