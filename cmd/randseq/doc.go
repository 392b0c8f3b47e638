// 31 July 2020

/*

Randseq is for making random fastq records for testing the code.
Usage:
	randseq [options] fname nseq minlen maxlen
will generate nseq records with lengths from minlen to maxlen, inclusive, and write them to fname. If fname is "-", records go to standard output.

Flags:
	-r, --seed N
		random number seed
	-e, --err
		provoke errors. The last quality string is one shorter than its
		sequence, so a reader should stop at the last record.
	-n, --non
		only A, C, G and T in the sequences. Without it, N appears too.
	-z, --gzip
		compress the output. Names ending in .gz are always compressed.
		With -z, .gz is added if it is not there.
	-c, --comment text
		put text after each identifier

We are most interested in benchmarking and parsing, so the content is not so important. Qualities are Sanger, from '!' to 'J'.
Lengths are spread evenly, so a length filter has something on each side of its limits.

*/
package main
