package task

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/trackademics/core"
)

var (
	examStatusTag       = "examstatus"
	examTypeTag         = "examtype"
	submissionStatusTag = "submissionstatus"
)

// InitValidators registers the record enums as validation aliases.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	registerEnum(validate, translator, examStatusTag, ExamStatuses)
	registerEnum(validate, translator, examTypeTag, ExamTypes)
	registerEnum(validate, translator, submissionStatusTag, SubmissionStatuses)
}

func registerEnum(validate *validator.Validate, translator ut.Translator, tag string, values []string) {
	validate.RegisterAlias(tag, "oneof="+strings.Join(values, " "))
	text := fmt.Sprintf("{0} must be one of [%s]", strings.Join(values, ", "))
	core.RegisterCustomTranslation(validate, translator, tag, text)
}
