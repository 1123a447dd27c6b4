package rental

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/gconf"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/store"
	"github.com/iov-one/rentbook/weavetest"
	"github.com/iov-one/rentbook/weavetest/assert"
)

func TestLoadConfiguration(t *testing.T) {
	db := store.MemStore()

	conf, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, DefaultConfiguration(), conf)

	custom := Configuration{
		Metadata:       &rentbook.Metadata{Schema: 1},
		InitializeCost: 1,
		RentCost:       2,
		ReturnCost:     3,
	}
	assert.Nil(t, gconf.Save(db, BucketName, &custom))
	conf, err = loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, custom, conf)
}

func TestConfigurationValidation(t *testing.T) {
	cases := map[string]struct {
		conf      Configuration
		wantField string
		wantErr   *errors.Error
	}{
		"default is valid": {
			conf: DefaultConfiguration(),
		},
		"zero costs are valid": {
			conf: Configuration{Metadata: &rentbook.Metadata{Schema: 1}},
		},
		"missing metadata": {
			conf:      Configuration{},
			wantField: "Metadata",
			wantErr:   errors.ErrMetadata,
		},
		"negative rent cost": {
			conf:      Configuration{Metadata: &rentbook.Metadata{Schema: 1}, RentCost: -1},
			wantField: "RentCost",
			wantErr:   errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestGenesisConfiguration(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	genesis := `{
		"conf": {"rental": {"metadata": {"schema": 1}, "initialize_cost": 5, "rent_cost": 6, "return_cost": 7}},
		"rental": [{"id": "first", "owner": "` + owner.String() + `"}]
	}`
	var opts rentbook.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	migration.MustInitPkg(db, "rental")
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	conf, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), conf.InitializeCost)
	assert.Equal(t, int64(6), conf.RentCost)
	assert.Equal(t, int64(7), conf.ReturnCost)

	opts = rentbook.Options{"conf": json.RawMessage(`{"rental": {"metadata": {"schema": 1}, "rent_cost": -2}}`)}
	err = Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrAmount, err)
}
