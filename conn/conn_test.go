package conn

import "testing"

func TestDSN(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "Full",
			cfg: Config{
				Host:     "db.internal",
				Port:     50000,
				Database: "FEATURES",
				User:     "svc_features",
				Password: "secret",
				SSLMode:  "require",
			},
			want: "host=db.internal port=50000 dbname=FEATURES user=svc_features password=secret sslmode=require",
		},
		{
			name: "OmitsEmptyFields",
			cfg:  Config{Host: "localhost", Database: "FEATURES"},
			want: "host=localhost dbname=FEATURES",
		},
		{
			name: "Empty",
			cfg:  Config{},
			want: "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.DSN(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
