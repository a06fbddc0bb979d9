package config

import "testing"

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		def     bool
		want    bool
		wantErr bool
	}{
		{name: "unset keeps default", value: "", def: true, want: true},
		{name: "false", value: "false", def: true, want: false},
		{name: "numeric true", value: "1", def: false, want: true},
		{name: "typo keeps default", value: "yes", def: true, want: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NARCOS_TEST_BOOL", tt.value)
			got, err := GetEnvBool("NARCOS_TEST_BOOL", tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
