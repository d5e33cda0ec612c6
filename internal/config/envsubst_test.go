package config

import (
	"testing"
)

func TestSubstituteEnvVars_Simple(t *testing.T) {
	t.Setenv("SLIDEMERGE_TEST_SIMPLE", "debug")

	content, missing := substituteEnvVars("level = ${SLIDEMERGE_TEST_SIMPLE}")
	if content != "level = debug" {
		t.Errorf("expected 'level = debug', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars, got %v", missing)
	}
}

func TestSubstituteEnvVars_Missing(t *testing.T) {
	// t.Setenv cannot unset, so use a name that is never set
	content, missing := substituteEnvVars("path = ${SLIDEMERGE_TEST_NONEXISTENT_12345}")
	if content != "path = ${SLIDEMERGE_TEST_NONEXISTENT_12345}" {
		t.Errorf("expected unchanged, got %q", content)
	}
	if len(missing) != 1 || missing[0] != "SLIDEMERGE_TEST_NONEXISTENT_12345" {
		t.Errorf("expected [SLIDEMERGE_TEST_NONEXISTENT_12345], got %v", missing)
	}
}

func TestSubstituteEnvVars_SetButEmpty(t *testing.T) {
	t.Setenv("SLIDEMERGE_TEST_EMPTY", "")

	content, missing := substituteEnvVars("path = '${SLIDEMERGE_TEST_EMPTY}'")
	if content != "path = ''" {
		t.Errorf("expected empty substitution, got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("set but empty is not missing, got %v", missing)
	}
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	// Empty triggers the default, same as unset
	t.Setenv("SLIDEMERGE_TEST_DEFAULT", "")

	content, missing := substituteEnvVars("progress = ${SLIDEMERGE_TEST_DEFAULT:-file}")
	if content != "progress = file" {
		t.Errorf("expected 'progress = file', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars with default, got %v", missing)
	}
}

func TestSubstituteEnvVars_DefaultOverriddenByEnv(t *testing.T) {
	t.Setenv("SLIDEMERGE_TEST_OVERRIDE", "slide")

	content, missing := substituteEnvVars("progress = ${SLIDEMERGE_TEST_OVERRIDE:-file}")
	if content != "progress = slide" {
		t.Errorf("expected 'progress = slide', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars, got %v", missing)
	}
}

func TestSubstituteEnvVars_RequiredError(t *testing.T) {
	t.Setenv("SLIDEMERGE_TEST_REQUIRED", "")

	content, missing := substituteEnvVars("path = ${SLIDEMERGE_TEST_REQUIRED:?history path is required}")
	if content != "path = ${SLIDEMERGE_TEST_REQUIRED:?history path is required}" {
		t.Errorf("expected unchanged, got %q", content)
	}
	if len(missing) != 1 || missing[0] != "SLIDEMERGE_TEST_REQUIRED: history path is required" {
		t.Errorf("expected error message, got %v", missing)
	}
}

func TestSubstituteEnvVars_Multiple(t *testing.T) {
	t.Setenv("SLIDEMERGE_TEST_ONE", "one")
	t.Setenv("SLIDEMERGE_TEST_THREE", "")

	content, missing := substituteEnvVars("${SLIDEMERGE_TEST_ONE} ${SLIDEMERGE_TEST_NONEXISTENT_2} ${SLIDEMERGE_TEST_THREE:-three}")
	if content != "one ${SLIDEMERGE_TEST_NONEXISTENT_2} three" {
		t.Errorf("expected 'one ${SLIDEMERGE_TEST_NONEXISTENT_2} three', got %q", content)
	}
	if len(missing) != 1 || missing[0] != "SLIDEMERGE_TEST_NONEXISTENT_2" {
		t.Errorf("expected [SLIDEMERGE_TEST_NONEXISTENT_2], got %v", missing)
	}
}

func TestSubstituteEnvVars_IgnoresOtherDollarText(t *testing.T) {
	content, missing := substituteEnvVars(`viewer = ["sh", "-c", "echo $HOME {path}"]`)
	if content != `viewer = ["sh", "-c", "echo $HOME {path}"]` {
		t.Errorf("expected unchanged, got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars, got %v", missing)
	}
}

func TestSubstituteEnvVars_IgnoresComments(t *testing.T) {
	t.Setenv("SLIDEMERGE_TEST_COMMENT", "debug")

	in := "# ${SLIDEMERGE_TEST_NONEXISTENT_12345}\n" +
		"level = ${SLIDEMERGE_TEST_COMMENT} # was ${SLIDEMERGE_TEST_NONEXISTENT_12345:?required}\n" +
		"path = \"a#${SLIDEMERGE_TEST_COMMENT}\"\n"
	want := "# ${SLIDEMERGE_TEST_NONEXISTENT_12345}\n" +
		"level = debug # was ${SLIDEMERGE_TEST_NONEXISTENT_12345:?required}\n" +
		"path = \"a#debug\"\n"

	content, missing := substituteEnvVars(in)
	if content != want {
		t.Errorf("expected %q, got %q", want, content)
	}
	if len(missing) != 0 {
		t.Errorf("comments must not report missing vars, got %v", missing)
	}
}

func TestSplitComment(t *testing.T) {
	tests := []struct {
		line, code, comment string
	}{
		{"level = \"warn\"", "level = \"warn\"", ""},
		{"# whole line", "", "# whole line"},
		{"a = 1 # note", "a = 1 ", "# note"},
		{"a = \"x # y\" # z", "a = \"x # y\" ", "# z"},
		{"a = 'x # y'", "a = 'x # y'", ""},
		{"a = \"q\\\"#\" #c", "a = \"q\\\"#\" ", "#c"},
	}
	for _, tt := range tests {
		code, comment := splitComment(tt.line)
		if code != tt.code || comment != tt.comment {
			t.Errorf("splitComment(%q) = (%q, %q), want (%q, %q)", tt.line, code, comment, tt.code, tt.comment)
		}
	}
}
