package fastq

var SetRdSize = setRdSize

// RdSize lets tests put the buffer size back.
func RdSize() int { return rdsize }
