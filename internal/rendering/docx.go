package rendering

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// ExportDOCX writes a minimal WordprocessingML package: the visible
// sections of the variant as headings and paragraphs, in reading order.
// Column and sidebar placement are not reproduced.
func ExportDOCX(variant Variant, data types.ResumeData) ([]byte, error) {
	layout, err := BuildLayout(variant, data)
	if err != nil {
		return nil, err
	}

	var body docxBody
	for _, section := range layout.Sections() {
		body.section(layout, section, data)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", body.document()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, &RenderError{Message: "failed to create " + part.name, Cause: err}
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, &RenderError{Message: "failed to write " + part.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Message: "failed to finish docx archive", Cause: err}
	}
	return buf.Bytes(), nil
}

type docxBody struct {
	sb strings.Builder
}

func (b *docxBody) paragraph(text string, bold bool, size int) {
	if text == "" {
		return
	}
	b.sb.WriteString("<w:p><w:r>")
	if bold || size > 0 {
		b.sb.WriteString("<w:rPr>")
		if bold {
			b.sb.WriteString("<w:b/>")
		}
		if size > 0 {
			b.sb.WriteString(`<w:sz w:val="` + strconv.Itoa(size) + `"/>`)
		}
		b.sb.WriteString("</w:rPr>")
	}
	b.sb.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(&b.sb, []byte(text))
	b.sb.WriteString("</w:t></w:r></w:p>")
}

func (b *docxBody) heading(text string) {
	b.paragraph(text, true, 28)
}

func (b *docxBody) section(layout Layout, section Section, data types.ResumeData) {
	switch section {
	case SectionName:
		b.paragraph(DisplayName(data), true, 44)
	case SectionContact:
		p := data.PersonalInfo
		b.paragraph(joinNonEmpty(" | ", p.Email, p.Phone, p.LinkedIn, p.Website), false, 0)
	case SectionSummary:
		b.heading(layout.Headings[section])
		b.paragraph(data.PersonalInfo.Summary, false, 0)
	case SectionExperience:
		b.heading(layout.Headings[section])
		for _, exp := range data.Experience {
			b.paragraph(joinNonEmpty(", ", exp.JobTitle, exp.Company), true, 0)
			b.paragraph(joinNonEmpty(" | ", exp.Location, joinNonEmpty(" - ", exp.StartDate, exp.EndDate)), false, 0)
			for _, item := range exp.Responsibilities {
				if item != "" {
					b.paragraph("• "+item, false, 0)
				}
			}
		}
	case SectionEducation:
		b.heading(layout.Headings[section])
		for _, edu := range data.Education {
			b.paragraph(joinNonEmpty(", ", edu.Degree, edu.Institution), true, 0)
			b.paragraph(joinNonEmpty(" | ", edu.Location, edu.GraduationDate), false, 0)
		}
	case SectionSkills:
		b.heading(layout.Headings[section])
		b.paragraph(joinNonEmpty(", ", data.Skills...), false, 0)
	}
}

func (b *docxBody) document() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		b.sb.String() +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
