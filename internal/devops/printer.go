package devops

import (
	"fmt"
	"io"
)

func LogError(w io.Writer, msg string, a ...any) {
	fmt.Fprintf(w, "##vso[task.logissue type=error]%s\n", fmt.Sprintf(msg, a...))
}

func LogWarning(w io.Writer, msg string, a ...any) {
	fmt.Fprintf(w, "##vso[task.logissue type=warning]%s\n", fmt.Sprintf(msg, a...))
}
